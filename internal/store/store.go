// Package store expose les capacités de persistance du storefront :
// utilisateurs (panier inclus), catalogue produits et commandes.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/models"
)

var (
	ErrNotFound  = errors.New("introuvable")
	ErrDuplicate = errors.New("existe déjà")
)

type UserStore interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)

	// Mutations du panier. Chaque opération est une écriture conditionnelle
	// ciblée sur la ligne du produit, pour éviter le read-modify-write
	// perdant entre deux requêtes concurrentes du même utilisateur.
	Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	SetCartQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID primitive.ObjectID) error
	PurgeCartItems(ctx context.Context, userID primitive.ObjectID, productIDs []primitive.ObjectID) error
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

// ProductFilter décrit la recherche catalogue paginée.
type ProductFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type ProductStore interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	SetImage(ctx context.Context, id primitive.ObjectID, url string) error
}

type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	Confirm(ctx context.Context, id primitive.ObjectID) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByID(ctx context.Context, id, userID primitive.ObjectID) (models.Order, error)
}
