package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/cache"
	"shopeasy_back_end/internal/models"
	"shopeasy_back_end/internal/store"
)

// Stores branchés au démarrage par cmd/server ; les tests y mettent des
// fakes en mémoire.
var (
	Users    store.UserStore
	Products store.ProductStore
	Orders   store.OrderStore
)

// currentUserID extrait l'identité résolue par le middleware JWT. Pas de
// session globale : chaque requête porte son user_id.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id invalide"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// resolveCart joint les lignes du panier au catalogue pour l'affichage.
// Les références mortes (produit supprimé du catalogue) sont purgées du
// panier stocké et n'apparaissent jamais côté client.
func resolveCart(ctx context.Context, userID primitive.ObjectID) ([]models.ResolvedCartItem, error) {
	items, err := Users.Cart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Lookup en deux temps : cache Redis d'abord, MongoDB pour les miss.
	found := make(map[primitive.ObjectID]models.Product, len(items))
	missing := []primitive.ObjectID{}
	for _, item := range items {
		if product, ok := cache.GetProduct(ctx, item.ProductID); ok {
			found[item.ProductID] = product
		} else {
			missing = append(missing, item.ProductID)
		}
	}

	if len(missing) > 0 {
		fromDB, err := Products.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for id, product := range fromDB {
			found[id] = product
			cache.SetProduct(ctx, product)
		}
	}

	resolved := []models.ResolvedCartItem{}
	dangling := []primitive.ObjectID{}
	for _, item := range items {
		product, ok := found[item.ProductID]
		if !ok {
			dangling = append(dangling, item.ProductID)
			continue
		}
		resolved = append(resolved, models.ResolvedCartItem{
			Product:  product,
			Quantity: item.Quantity,
		})
	}

	if len(dangling) > 0 {
		if err := Users.PurgeCartItems(ctx, userID, dangling); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}
