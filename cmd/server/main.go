package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shopeasy_back_end/internal/config"
	"shopeasy_back_end/internal/database"
	"shopeasy_back_end/internal/handlers/product"
	"shopeasy_back_end/internal/handlers/user"
	"shopeasy_back_end/internal/routes"
	"shopeasy_back_end/internal/services"
	"shopeasy_back_end/internal/store"
)

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.Disconnect(context.Background())

	services.ConnectMinio()

	// Index d'unicité (email, clé d'idempotence des commandes)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureIndexes(ctx, database.MongoDB); err != nil {
		log.Fatalf("❌ Échec création des index MongoDB: %v", err)
	}
	cancel()

	// Brancher les stores Mongo sur les handlers
	user.Users = store.NewMongoUserStore(database.MongoDB)
	user.Products = store.NewMongoProductStore(database.MongoDB)
	user.Orders = store.NewMongoOrderStore(database.MongoDB)
	product.Products = store.NewMongoProductStore(database.MongoDB)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Println("🚀 Serveur ShopEasy lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}
