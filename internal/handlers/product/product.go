package product

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/cache"
	"shopeasy_back_end/internal/models"
	"shopeasy_back_end/internal/search"
	"shopeasy_back_end/internal/store"
)

// Products est branché au démarrage par cmd/server.
var Products store.ProductStore

// 📦 GET /api/products?search=&category=&page=&limit=
func GetProducts(c *gin.Context) {
	filter := store.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "12"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 12
	}

	// Recherche full-text via Elasticsearch quand il est là, sinon les
	// filtres MongoDB font l'affaire.
	if filter.Search != "" && search.Enabled() {
		listFromElastic(c, filter)
		return
	}

	products, total, err := Products.List(c.Request.Context(), filter)
	if err != nil {
		log.Println("❌ Erreur listing produits:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     filter.Page,
		"pages":    int(math.Ceil(float64(total) / float64(filter.Limit))),
	})
}

func listFromElastic(c *gin.Context, filter store.ProductFilter) {
	ids, err := search.SearchProductIDs(c.Request.Context(), filter.Search)
	if err != nil {
		// Elastic en panne : on retombe sur MongoDB plutôt que d'échouer.
		log.Println("⚠️ Recherche Elastic échouée, fallback MongoDB:", err)
		products, total, err := Products.List(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    total,
			"page":     filter.Page,
			"pages":    int(math.Ceil(float64(total) / float64(filter.Limit))),
		})
		return
	}

	byID, err := Products.FindByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Ordre de pertinence Elastic, filtre catégorie puis pagination.
	matched := []models.Product{}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue // indexé mais supprimé du catalogue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"products": matched[start:end],
		"total":    total,
		"page":     filter.Page,
		"pages":    int(math.Ceil(float64(total) / float64(filter.Limit))),
	})
}

// 📦 GET /api/products/:id
func GetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if product, ok := cache.GetProduct(c.Request.Context(), productID); ok {
		c.JSON(http.StatusOK, product)
		return
	}

	product, err := Products.FindByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	cache.SetProduct(c.Request.Context(), product)
	c.JSON(http.StatusOK, product)
}

// 🟢 POST /api/products
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gte=0"`
		Image       string  `json:"image"`
		Category    string  `json:"category" binding:"required"`
		Stock       int     `json:"stock" binding:"gte=0"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	created, err := Products.Create(c.Request.Context(), models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Stock:       input.Stock,
	})
	if err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	go search.IndexProduct(created)

	c.JSON(http.StatusCreated, created)
}
