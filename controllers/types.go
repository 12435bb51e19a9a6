package controllers

import (
	"context"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/AnshJain2033/Backend-Ecommerce-App/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CatalogService is the catalog surface the product controller depends on.
type CatalogService interface {
	List(ctx context.Context) ([]models.Product, error)
	Paginate(ctx context.Context, page int) ([]models.Product, error)
	Filter(ctx context.Context, checked []primitive.ObjectID, radio []float64) ([]models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	Related(ctx context.Context, productID, categoryID primitive.ObjectID) ([]models.Product, error)
	ByCategorySlug(ctx context.Context, slug string) (*models.Category, []models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetPhoto(ctx context.Context, id primitive.ObjectID) ([]byte, string, error)
	Create(ctx context.Context, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, in services.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderService is the checkout surface the payment controller depends on.
type OrderService interface {
	ClientToken(ctx context.Context) (string, error)
	Checkout(ctx context.Context, buyer primitive.ObjectID, cart []models.CartItem, nonce string) (*services.CheckoutResult, error)
}

// NotificationService triggers the order confirmation mail.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, orderID, buyerID primitive.ObjectID) error
}

// respondError maps a service error onto the JSON envelope. Unexpected and
// upstream failures are logged here, once, with their cause.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal || appErr.Kind == apperrors.KindTransport {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", string(appErr.Kind)),
			zap.Error(appErr),
		)
	}
	c.JSON(appErr.Code, gin.H{
		"success": false,
		"message": appErr.Message,
		"error":   string(appErr.Kind),
	})
}
