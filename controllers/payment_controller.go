package controllers

import (
	"net/http"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/middleware"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentController struct {
	orders OrderService
}

func NewPaymentController(orders OrderService) *PaymentController {
	return &PaymentController{orders: orders}
}

// BraintreeToken hands the storefront a gateway client token.
func (pc *PaymentController) BraintreeToken(c *gin.Context) {
	token, err := pc.orders.ClientToken(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"clientToken": token,
	})
}

type paymentRequest struct {
	Cart  []models.CartItem `json:"cart" binding:"required"`
	Nonce string            `json:"nonce" binding:"required"`
}

// BraintreePayment charges the submitted cart and, on success, returns the
// persisted order id and the buyer id.
func (pc *PaymentController) BraintreePayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("cart and payment nonce are required"))
		return
	}

	buyer, err := primitive.ObjectIDFromHex(middleware.GetUserID(c))
	if err != nil {
		respondError(c, apperrors.Validation("invalid buyer id"))
		return
	}

	result, err := pc.orders.Checkout(c.Request.Context(), buyer, req.Cart, req.Nonce)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":  true,
		"cid": result.BuyerID,
		"oid": result.OrderID,
	})
}
