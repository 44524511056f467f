// Package cartops contient la logique pure du panier : mutation des lignes,
// calcul du total et construction du snapshot de commande. Aucune dépendance
// au stockage, pour pouvoir tester la mutation sans catalogue.
package cartops

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/models"
)

var (
	ErrEmptyCart    = errors.New("panier vide")
	ErrItemNotFound = errors.New("produit absent du panier")
)

// AddItem ajoute quantity au panier pour productID. Si une ligne existe déjà
// pour ce produit, les quantités fusionnent ; sinon une ligne est ajoutée en
// fin de panier.
func AddItem(items []models.CartItem, productID primitive.ObjectID, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: quantity})
}

// SetQuantity remplace la quantité d'une ligne existante. Une quantité ≤ 0
// supprime la ligne. Renvoie ErrItemNotFound si le produit n'est pas dans le
// panier.
func SetQuantity(items []models.CartItem, productID primitive.ObjectID, quantity int) ([]models.CartItem, error) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity = quantity
		return items, nil
	}
	return nil, ErrItemNotFound
}

// RemoveItem retire la ligne du produit si elle existe. Un produit absent
// n'est pas une erreur : le panier est renvoyé tel quel.
func RemoveItem(items []models.CartItem, productID primitive.ObjectID) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// Total calcule Σ prix × quantité sur les lignes résolues. L'accumulation
// reste en float64 ; l'arrondi à deux décimales n'intervient qu'au moment de
// figer le total dans la commande.
func Total(items []models.ResolvedCartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Round2 arrondit un montant au centime.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// BuildOrder transforme un panier résolu en commande. Chaque ligne capture le
// prix courant du produit : le snapshot est découplé des changements de prix
// futurs du catalogue. Renvoie ErrEmptyCart si le panier n'a aucune ligne.
func BuildOrder(userID primitive.ObjectID, items []models.ResolvedCartItem, address models.ShippingAddress, now time.Time) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	return models.Order{
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     Round2(Total(items)),
		ShippingAddress: address,
		Status:          models.OrderStatusPending,
		IdempotencyKey:  uuid.NewString(),
		CreatedAt:       now,
	}, nil
}
