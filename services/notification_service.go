package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/AnshJain2033/Backend-Ecommerce-App/sender"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserStore is the read-only user collection surface; it supplies the
// buyer's e-mail address.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// orderEmailData is what the confirmation template renders.
type orderEmailData struct {
	Buyer    *models.User
	Order    *models.Order
	Products []models.Product
}

type NotificationService struct {
	orders      OrderStore
	users       UserStore
	products    ProductStore
	emailSender sender.EmailSender
	tmpl        *template.Template
}

func NewNotificationService(
	orders OrderStore,
	users UserStore,
	products ProductStore,
	emailSender sender.EmailSender,
	templatePath string,
) (*NotificationService, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order confirmation template: %w", err)
	}
	return &NotificationService{
		orders:      orders,
		users:       users,
		products:    products,
		emailSender: emailSender,
		tmpl:        tmpl,
	}, nil
}

// SendOrderConfirmation loads the buyer, the order and the ordered products,
// renders the confirmation template and dispatches it. It is best-effort:
// it never retries and its failure never affects the order itself.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, orderID, buyerID primitive.ObjectID) error {
	buyer, err := s.users.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("buyer not found")
		}
		return apperrors.Transport("failed to fetch buyer", err)
	}
	if buyer.Email == "" {
		return apperrors.Validation("buyer has no e-mail address")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("order not found")
		}
		return apperrors.Transport("failed to fetch order", err)
	}

	ids := make([]primitive.ObjectID, 0, len(order.Products))
	for _, item := range order.Products {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return apperrors.Transport("failed to fetch ordered products", err)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, orderEmailData{Buyer: buyer, Order: order, Products: products}); err != nil {
		return apperrors.Internal(fmt.Errorf("template render failed: %w", err))
	}

	subject := fmt.Sprintf("Purchase Confirmation Mail for OrderID: %s", order.ID.Hex())
	result, err := s.emailSender.SendEmail(ctx, buyer.Email, subject, buf.String())
	if err != nil {
		return apperrors.Transport(err.Error(), err)
	}

	zap.L().Info("order confirmation sent",
		zap.String("order_id", order.ID.Hex()),
		zap.String("message_id", result.MessageID),
	)
	return nil
}
