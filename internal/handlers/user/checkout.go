package user

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopeasy_back_end/internal/cache"
	"shopeasy_back_end/internal/cartops"
	"shopeasy_back_end/internal/models"
	"shopeasy_back_end/internal/utils"
)

// orderItemView expose une ligne de commande avec le produit résolu pour
// l'affichage, en plus du prix figé au checkout.
type orderItemView struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
}

func orderView(order models.Order, resolved []models.ResolvedCartItem) gin.H {
	products := make(map[primitive.ObjectID]models.Product, len(resolved))
	for _, item := range resolved {
		products[item.Product.ID] = item.Product
	}

	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			Product:  products[item.ProductID],
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return gin.H{
		"id":              order.ID,
		"userId":          order.UserID,
		"items":           items,
		"totalAmount":     order.TotalAmount,
		"shippingAddress": order.ShippingAddress,
		"status":          order.Status,
		"createdAt":       order.CreatedAt,
	}
}

// 💳 POST /api/cart/checkout
//
// Séquence en deux temps : la commande est insérée en "pending" avec une clé
// d'idempotence, le panier est vidé, puis la commande passe à "confirmed".
// Un échec entre deux étapes est signalé distinctement au client au lieu de
// passer pour un échec total.
func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison invalide", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Un seul checkout à la fois par utilisateur.
	if !cache.AcquireCheckoutLock(ctx, userID.Hex()) {
		c.JSON(http.StatusConflict, gin.H{"error": "Un checkout est déjà en cours"})
		return
	}
	defer cache.ReleaseCheckoutLock(ctx, userID.Hex())

	resolved, err := resolveCart(ctx, userID)
	if err != nil {
		log.Println("❌ Erreur lecture panier:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	// Snapshot : chaque ligne fige le prix catalogue courant.
	order, err := cartops.BuildOrder(userID, resolved, input.ShippingAddress, time.Now().UTC())
	if err != nil {
		if errors.Is(err, cartops.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	created, err := Orders.Insert(ctx, order)
	if err != nil {
		log.Println("❌ Erreur création commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	if err := Users.ClearCart(ctx, userID); err != nil {
		// La commande existe mais le panier n'a pas été vidé : on le dit
		// explicitement, la commande reste en "pending".
		log.Println("⚠️ Commande", created.ID.Hex(), "créée mais panier non vidé:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Commande enregistrée mais panier non vidé, réessayez",
			"order": orderView(created, resolved),
		})
		return
	}

	if err := Orders.Confirm(ctx, created.ID); err != nil {
		log.Println("⚠️ Commande", created.ID.Hex(), "non confirmée:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Commande enregistrée mais non confirmée",
			"order": orderView(created, resolved),
		})
		return
	}
	created.Status = models.OrderStatusConfirmed

	// Confirmation par mail, sans bloquer la réponse.
	if email := c.GetString("email"); email != "" {
		go func(to string, order models.Order) {
			if err := utils.SendOrderConfirmation(to, order); err != nil {
				log.Println("⚠️ Mail de confirmation non envoyé:", err)
			}
		}(email, created)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande enregistrée avec succès",
		"order":   orderView(created, resolved),
	})
}
