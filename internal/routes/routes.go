package routes

import (
	"github.com/gin-gonic/gin"

	"shopeasy_back_end/internal/handlers/product"
	"shopeasy_back_end/internal/handlers/user"
	"shopeasy_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/signup", user.Signup)
		auth.POST("/login", user.Login)
	}

	// Catalogue
	products := api.Group("/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/:id", product.GetProduct)
		products.POST("", middleware.AuthRequired(), product.CreateProduct)
		products.POST("/:id/image", middleware.AuthRequired(), product.UploadProductImage)
	}

	// Panier + checkout
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("", user.AddToCart)
		cart.PUT("/:productId", user.UpdateCartItem)
		cart.DELETE("/:productId", user.RemoveFromCart)
		cart.POST("/checkout", user.Checkout)
	}

	// Commandes
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
	}
}
