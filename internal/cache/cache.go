// Package cache : cache produits et verrous de checkout, adossés à Redis.
// Tout est best-effort : sans Redis, les lectures retombent sur MongoDB et
// les checkouts ne sont plus sérialisés par utilisateur.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/database"
	"shopeasy_back_end/internal/models"
)

const (
	ProductTTL      = 10 * time.Minute
	CheckoutLockTTL = 30 * time.Second
)

func productKey(id primitive.ObjectID) string {
	return "product:" + id.Hex()
}

// GetProduct lit un produit depuis le cache. Renvoie false sur miss, Redis
// absent, ou entrée illisible.
func GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, bool) {
	if database.Redis == nil {
		return models.Product{}, false
	}

	data, err := database.Redis.Get(ctx, productKey(id)).Result()
	if err != nil || data == "" {
		return models.Product{}, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		return models.Product{}, false
	}
	return product, true
}

func SetProduct(ctx context.Context, product models.Product) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productKey(product.ID), data, ProductTTL)
}

// InvalidateProduct purge l'entrée après une mise à jour du catalogue.
func InvalidateProduct(ctx context.Context, id primitive.ObjectID) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, productKey(id))
}

// --- Verrou Checkout ---

// AcquireCheckoutLock sérialise les checkouts d'un même utilisateur : la
// séquence création-commande / vidage-panier n'est pas transactionnelle, un
// seul checkout à la fois par utilisateur peut donc l'exécuter. Sans Redis
// le verrou est accordé d'office.
func AcquireCheckoutLock(ctx context.Context, userID string) bool {
	if database.Redis == nil {
		return true
	}
	key := fmt.Sprintf("checkout:%s", userID)
	ok, err := database.Redis.SetNX(ctx, key, "locked", CheckoutLockTTL).Result()
	if err != nil {
		// Redis en panne ne doit pas bloquer les ventes.
		return true
	}
	return ok
}

func ReleaseCheckoutLock(ctx context.Context, userID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, fmt.Sprintf("checkout:%s", userID))
}
