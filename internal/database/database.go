package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Clients Globaux ---
var (
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise MongoDB (obligatoire), puis Redis et
// Elasticsearch (optionnels : sans eux le serveur tourne en mode dégradé,
// sans cache ni recherche full-text).
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. MongoDB
	if err := connectMongo(ctx); err != nil {
		log.Fatalf("❌ Échec initialisation MongoDB: %v", err)
	}

	// 2. Redis
	connectRedis(ctx)

	// 3. Elasticsearch
	connectElastic()
}

func connectMongo(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "shopeasy"
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Mongo = client
	MongoDB = client.Database(dbName)
	log.Println("✅ MongoDB connecté:", dbName)
	return nil
}

func connectRedis(ctx context.Context) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("⚠️ REDIS_HOST non configuré — cache et verrous checkout désactivés")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis injoignable:", err)
		return
	}

	Redis = client
	log.Println("✅ Redis connecté avec succès")
}

func connectElastic() {
	elasticURL := os.Getenv("ELASTIC_URL")
	if elasticURL == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche produits via MongoDB")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{elasticURL},
		Username:  os.Getenv("ELASTIC_USERNAME"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	})
	if err != nil {
		log.Println("⚠️ Elasticsearch non configuré:", err)
		return
	}

	Elastic = client
	log.Println("✅ Elasticsearch connecté:", elasticURL)
}

// Disconnect ferme proprement les connexions ouvertes.
func Disconnect(ctx context.Context) {
	if Redis != nil {
		_ = Redis.Close()
	}
	if Mongo != nil {
		_ = Mongo.Disconnect(ctx)
	}
}
