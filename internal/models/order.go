package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts d'une commande. Une commande reste "pending" entre l'insertion
// et le vidage du panier, puis passe à "confirmed". Elle n'est plus jamais
// modifiée ensuite.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalAmount     float64            `bson:"total_amount" json:"totalAmount"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shippingAddress"`
	Status          string             `bson:"status" json:"status"`
	IdempotencyKey  string             `bson:"idempotency_key" json:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// OrderItem fige le prix du produit au moment du checkout : les changements
// de prix ultérieurs du catalogue ne touchent jamais une commande passée.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	PostalCode string `bson:"postal_code" json:"postalCode" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
}
