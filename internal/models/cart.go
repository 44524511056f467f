package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartItem est une ligne du panier telle que stockée dans le document user.
// Une seule entrée par produit : l'ajout fusionne les quantités.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// ResolvedCartItem est une ligne du panier enrichie avec le produit complet,
// pour l'affichage côté client.
type ResolvedCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
