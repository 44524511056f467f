package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopeasy_back_end/internal/models"
)

// --- Utilisateurs ---

type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	user.CreatedAt = time.Now().UTC()
	if user.Cart == nil {
		user.Cart = []models.CartItem{}
	}

	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}

	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoUserStore) Cart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// AddCartItem incrémente la ligne existante via un $inc positionnel ; si
// aucune ligne ne matche, un $push conditionné par l'absence du produit crée
// la ligne. Deux ajouts concurrents du même produit s'additionnent donc au
// lieu de s'écraser.
func (s *MongoUserStore) AddCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": bson.M{"$ne": productID}},
		bson.M{"$push": bson.M{"cart": models.CartItem{ProductID: productID, Quantity: quantity}}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Un $push concurrent a créé la ligne entre les deux updates : on
	// retombe sur l'incrément.
	res, err = s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": productID},
		bson.M{"$inc": bson.M{"cart.$.quantity": quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound // utilisateur inexistant
	}
	return nil
}

func (s *MongoUserStore) SetCartQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	if quantity <= 0 {
		// Quantité nulle ou négative = suppression de la ligne, mais une
		// ligne absente reste une erreur pour le PUT.
		res, err := s.col.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"cart": bson.M{"product": productID}}})
		if err != nil {
			return err
		}
		if res.ModifiedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID, "cart.product": productID},
		bson.M{"$set": bson.M{"cart.$.quantity": quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUserStore) RemoveCartItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	// Produit absent = no-op, pas une erreur.
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"product": productID}}})
	return err
}

func (s *MongoUserStore) PurgeCartItems(ctx context.Context, userID primitive.ObjectID, productIDs []primitive.ObjectID) error {
	if len(productIDs) == 0 {
		return nil
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"cart": bson.M{"product": bson.M{"$in": productIDs}}}})
	return err
}

func (s *MongoUserStore) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": []models.CartItem{}}})
	return err
}

// --- Catalogue ---

type MongoProductStore struct {
	col *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{col: db.Collection("products")}
}

func (s *MongoProductStore) Create(ctx context.Context, product models.Product) (models.Product, error) {
	product.CreatedAt = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	return product, err
}

func (s *MongoProductStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (s *MongoProductStore) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *MongoProductStore) SetImage(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"image": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Commandes ---

type MongoOrderStore struct {
	col *mongo.Collection
}

func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{col: db.Collection("orders")}
}

func (s *MongoOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	res, err := s.col.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Order{}, ErrDuplicate
		}
		return models.Order{}, err
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return order, nil
}

// Confirm fait passer la commande de pending à confirmed. C'est la seule
// écriture autorisée sur une commande existante.
func (s *MongoOrderStore) Confirm(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{"status": models.OrderStatusConfirmed}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoOrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) FindByID(ctx context.Context, id, userID primitive.ObjectID) (models.Order, error) {
	var order models.Order
	// On vérifie que la commande appartient bien à l'utilisateur.
	err := s.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	return order, err
}

// EnsureIndexes pose les index d'unicité : email utilisateur et clé
// d'idempotence des commandes (un retry de checkout ne crée jamais deux
// commandes pour la même tentative).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("orders").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
