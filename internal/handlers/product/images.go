package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/cache"
	"shopeasy_back_end/internal/search"
	"shopeasy_back_end/internal/services"
	"shopeasy_back_end/internal/store"
)

// 🖼️ POST /api/products/:id/image
//
// Upload multipart vers MinIO, puis mise à jour de l'URL image du produit.
func UploadProductImage(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadFile(c.Request.Context(), "products", file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	if err := Products.SetImage(c.Request.Context(), productID, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// L'entrée cache et l'index portent l'ancienne URL.
	cache.InvalidateProduct(c.Request.Context(), productID)
	if product, err := Products.FindByID(c.Request.Context(), productID); err == nil {
		go search.IndexProduct(product)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image mise à jour", "image": url})
}
