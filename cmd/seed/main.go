// Commande de seed : vide le catalogue et insère les produits d'exemple.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"shopeasy_back_end/internal/config"
	"shopeasy_back_end/internal/database"
	"shopeasy_back_end/internal/models"
	"shopeasy_back_end/internal/search"
	"shopeasy_back_end/internal/store"
)

var sampleProducts = []models.Product{
	{
		Name:        "Wireless Bluetooth Headphones",
		Description: "High-quality wireless headphones with noise cancellation",
		Price:       199.99,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       50,
		Rating:      4.5,
		NumReviews:  128,
	},
	{
		Name:        "Smart Watch Series 5",
		Description: "Advanced fitness tracking and smart notifications",
		Price:       299.99,
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       30,
		Rating:      4.7,
		NumReviews:  89,
	},
	{
		Name:        "Organic Cotton T-Shirt",
		Description: "Comfortable and sustainable organic cotton tee",
		Price:       29.99,
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=400&fit=crop",
		Category:    "Clothing",
		Stock:       100,
		Rating:      4.3,
		NumReviews:  56,
	},
	{
		Name:        "Gaming Laptop Pro 15",
		Description: "Powerful gaming laptop with RTX graphics and fast refresh display",
		Price:       1499.99,
		Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       20,
		Rating:      4.8,
		NumReviews:  210,
	},
	{
		Name:        "Stainless Steel Water Bottle",
		Description: "Insulated bottle keeps drinks hot or cold for 24 hours",
		Price:       24.99,
		Image:       "https://images.unsplash.com/photo-1560841615-4e4c90b7b62a?w=400&h=400&fit=crop",
		Category:    "Accessories",
		Stock:       200,
		Rating:      4.6,
		NumReviews:  342,
	},
	{
		Name:        "Running Shoes X200",
		Description: "Lightweight running shoes with superior cushioning",
		Price:       119.99,
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=400&fit=crop",
		Category:    "Sports",
		Stock:       75,
		Rating:      4.4,
		NumReviews:  178,
	},
	{
		Name:        "Classic Leather Wallet",
		Description: "Minimalist and stylish genuine leather wallet",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1523289333742-be1143f6b766?w=400&h=400&fit=crop&auto=format&q=80",
		Category:    "Accessories",
		Stock:       90,
		Rating:      4.2,
		NumReviews:  67,
	},
	{
		Name:        "Noise Cancelling Earbuds",
		Description: "Compact earbuds with immersive sound and ANC technology",
		Price:       149.99,
		Image:       "https://images.unsplash.com/photo-1606813902779-5d9f1a6e2dff?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       120,
		Rating:      4.5,
		NumReviews:  134,
	},
	{
		Name:        "Smartphone Tripod Stand",
		Description: "Adjustable tripod stand compatible with all smartphones",
		Price:       39.99,
		Image:       "https://images.unsplash.com/photo-1580894742904-6c36f5f8d6d3?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       60,
		Rating:      4.3,
		NumReviews:  54,
	},
	{
		Name:        "Modern Desk Lamp",
		Description: "LED desk lamp with adjustable brightness and touch control",
		Price:       59.99,
		Image:       "https://images.unsplash.com/photo-1505691938895-1758d7feb511?w=400&h=400&fit=crop",
		Category:    "Home",
		Stock:       85,
		Rating:      4.4,
		NumReviews:  92,
	},
	{
		Name:        "Cotton Hoodie",
		Description: "Soft and warm cotton hoodie for everyday wear",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1612423284934-46aa6c039f87?w=400&h=400&fit=crop",
		Category:    "Clothing",
		Stock:       150,
		Rating:      4.6,
		NumReviews:  101,
	},
	{
		Name:        "Fiction Bestseller Book",
		Description: "Gripping novel from an award-winning author",
		Price:       19.99,
		Image:       "https://images.unsplash.com/photo-1524995997946-a1c2e315a42f?w=400&h=400&fit=crop",
		Category:    "Books",
		Stock:       300,
		Rating:      4.8,
		NumReviews:  420,
	},
	{
		Name:        "Portable Bluetooth Speaker",
		Description: "Loud and clear sound with deep bass, water-resistant",
		Price:       89.99,
		Image:       "https://images.unsplash.com/photo-1519677100203-a0e668c92439?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       110,
		Rating:      4.5,
		NumReviews:  198,
	},
	{
		Name:        "Yoga Mat Pro",
		Description: "Non-slip yoga mat with extra cushioning and durability",
		Price:       39.99,
		Image:       "https://images.unsplash.com/photo-1603286463744-fd3f2f7f69f2?w=400&h=400&fit=crop",
		Category:    "Sports",
		Stock:       140,
		Rating:      4.7,
		NumReviews:  233,
	},
	{
		Name:        "Digital DSLR Camera",
		Description: "Professional DSLR camera with 24MP lens and 4K video support",
		Price:       899.99,
		Image:       "https://images.unsplash.com/photo-1519183071298-a2962be90b8e?w=400&h=400&fit=crop",
		Category:    "Electronics",
		Stock:       25,
		Rating:      4.9,
		NumReviews:  65,
	},
}

func main() {
	config.Load()
	database.ConnectDatabases()
	defer database.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Vider le catalogue existant avant de réinsérer
	if _, err := database.MongoDB.Collection("products").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("❌ Échec suppression des produits existants: %v", err)
	}

	products := store.NewMongoProductStore(database.MongoDB)
	for _, p := range sampleProducts {
		created, err := products.Create(ctx, p)
		if err != nil {
			log.Fatalf("❌ Échec insertion produit %q: %v", p.Name, err)
		}
		search.IndexProduct(created)
	}

	log.Printf("✅ %d produits d'exemple insérés", len(sampleProducts))
}
