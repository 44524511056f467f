package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/cartops"
	"shopeasy_back_end/internal/handlers/product"
	"shopeasy_back_end/internal/handlers/user"
	"shopeasy_back_end/internal/models"
	"shopeasy_back_end/internal/routes"
	"shopeasy_back_end/internal/store"
	"shopeasy_back_end/internal/utils"
)

// Fakes en mémoire reproduisant la sémantique des stores Mongo (écritures
// conditionnelles par référence produit incluses).

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[primitive.ObjectID]models.User
	emails map[string]primitive.ObjectID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  map[primitive.ObjectID]models.User{},
		emails: map[string]primitive.ObjectID{},
	}
}

func (s *fakeUserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[u.Email]; ok {
		return models.User{}, store.ErrDuplicate
	}
	u.ID = primitive.NewObjectID()
	if u.Cart == nil {
		u.Cart = []models.CartItem{}
	}
	s.users[u.ID] = u
	s.emails[u.Email] = u.ID
	return u, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}

func (s *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]models.CartItem{}, u.Cart...), nil
}

func (s *fakeUserStore) AddCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Cart = cartops.AddItem(u.Cart, productID, quantity)
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) SetCartQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	items, err := cartops.SetQuantity(u.Cart, productID, quantity)
	if err != nil {
		return store.ErrNotFound
	}
	u.Cart = items
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) RemoveCartItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Cart = cartops.RemoveItem(u.Cart, productID)
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) PurgeCartItems(ctx context.Context, userID primitive.ObjectID, productIDs []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, id := range productIDs {
		u.Cart = cartops.RemoveItem(u.Cart, id)
	}
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Cart = []models.CartItem{}
	s.users[userID] = u
	return nil
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
}

func (s *fakeProductStore) Create(ctx context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, store.ErrNotFound
	}
	return p, nil
}

func (s *fakeProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeProductStore) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Product{}
	for _, p := range s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProductStore) SetImage(ctx context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Image = url
	s.products[id] = p
	return nil
}

func (s *fakeProductStore) setPrice(id primitive.ObjectID, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[id]
	p.Price = price
	s.products[id] = p
}

func (s *fakeProductStore) remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

func (s *fakeOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.IdempotencyKey == order.IdempotencyKey {
			return models.Order{}, store.ErrDuplicate
		}
	}
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *fakeOrderStore) Confirm(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id && s.orders[i].Status == models.OrderStatusPending {
			s.orders[i].Status = models.OrderStatusConfirmed
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *fakeOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	// Plus récente d'abord
	for i := len(s.orders) - 1; i >= 0; i-- {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

func (s *fakeOrderStore) FindByID(ctx context.Context, id, userID primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id && order.UserID == userID {
			return order, nil
		}
	}
	return models.Order{}, store.ErrNotFound
}

func (s *fakeOrderStore) all() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order{}, s.orders...)
}

// --- Setup ---

type testEnv struct {
	router   *gin.Engine
	users    *fakeUserStore
	products *fakeProductStore
	orders   *fakeOrderStore
	account  models.User
	token    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    newFakeUserStore(),
		products: newFakeProductStore(),
		orders:   newFakeOrderStore(),
	}
	user.Users = env.users
	user.Products = env.products
	user.Orders = env.orders
	product.Products = env.products

	account, err := env.users.Create(context.Background(), models.User{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	env.account = account

	token, err := utils.GenerateJWT(account)
	require.NoError(t, err)
	env.token = token

	env.router = gin.New()
	routes.RegisterRoutes(env.router)
	return env
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p, err := env.products.Create(context.Background(), models.Product{
		Name:     name,
		Price:    price,
		Category: "Test",
		Stock:    stock,
	})
	require.NoError(t, err)
	return p
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+env.token)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) []models.ResolvedCartItem {
	t.Helper()
	var items []models.ResolvedCartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	return items
}
