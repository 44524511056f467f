package user_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddToCart(t *testing.T) {
	t.Run("ajouts successifs du même produit fusionnent en une ligne", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": p1.ID.Hex(),
			"quantity":  1,
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": p1.ID.Hex(),
			"quantity":  2,
		})
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, p1.ID, items[0].Product.ID)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("quantité absente vaut 1", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": p1.ID.Hex(),
		})
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})

	t.Run("produit inconnu du catalogue", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": primitive.NewObjectID().Hex(),
			"quantity":  1,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("quantité invalide", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": p1.ID.Hex(),
			"quantity":  0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("body invalide", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sans token", func(t *testing.T) {
		env := newTestEnv(t)
		env.token = "invalide"

		w := env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{
			"productId": primitive.NewObjectID().Hex(),
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateCartItem(t *testing.T) {
	t.Run("remplace la quantité", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex(), "quantity": 1})

		w := env.do(t, http.MethodPut, "/api/cart/"+p1.ID.Hex(), map[string]interface{}{"quantity": 5})
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("quantité zéro supprime la ligne", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex(), "quantity": 2})

		w := env.do(t, http.MethodPut, "/api/cart/"+p1.ID.Hex(), map[string]interface{}{"quantity": 0})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w))
	})

	t.Run("quantité négative supprime aussi", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex(), "quantity": 2})

		w := env.do(t, http.MethodPut, "/api/cart/"+p1.ID.Hex(), map[string]interface{}{"quantity": -1})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w))
	})

	t.Run("ligne absente du panier", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)

		w := env.do(t, http.MethodPut, "/api/cart/"+p1.ID.Hex(), map[string]interface{}{"quantity": 2})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("quantité manquante", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex()})

		w := env.do(t, http.MethodPut, "/api/cart/"+p1.ID.Hex(), map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRemoveFromCart(t *testing.T) {
	t.Run("supprime la ligne", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		p2 := env.seedProduct(t, "Montre", 299.99, 30)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex()})
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p2.ID.Hex()})

		w := env.do(t, http.MethodDelete, "/api/cart/"+p1.ID.Hex(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, p2.ID, items[0].Product.ID)
	})

	t.Run("produit absent est un no-op", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex(), "quantity": 2})

		w := env.do(t, http.MethodDelete, "/api/cart/"+primitive.NewObjectID().Hex(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})
}

func TestGetCart(t *testing.T) {
	t.Run("panier vide", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w))
	})

	t.Run("lignes résolues avec le produit complet", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex(), "quantity": 2})

		w := env.do(t, http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, "Casque", items[0].Product.Name)
		assert.Equal(t, 199.99, items[0].Product.Price)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("référence morte purgée du panier", func(t *testing.T) {
		env := newTestEnv(t)
		p1 := env.seedProduct(t, "Casque", 199.99, 50)
		p2 := env.seedProduct(t, "Montre", 299.99, 30)
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p1.ID.Hex()})
		env.do(t, http.MethodPost, "/api/cart", map[string]interface{}{"productId": p2.ID.Hex()})

		// Le produit disparaît du catalogue après son ajout au panier.
		env.products.remove(p1.ID)

		w := env.do(t, http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)

		items := decodeCart(t, w)
		require.Len(t, items, 1)
		assert.Equal(t, p2.ID, items[0].Product.ID)

		// La purge touche aussi le panier stocké.
		stored, err := env.users.Cart(t.Context(), env.account.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, p2.ID, stored[0].ProductID)
	})
}
