package services

import (
	"context"
	"time"

	"github.com/AnshJain2033/Backend-Ecommerce-App/apperrors"
	"github.com/AnshJain2033/Backend-Ecommerce-App/gateway"
	"github.com/AnshJain2033/Backend-Ecommerce-App/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrderStore is the order collection surface used by checkout and the
// notification flow.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
}

// MailEnqueuer accepts post-commit notification jobs. Enqueue must never
// block; it reports whether the job was accepted.
type MailEnqueuer interface {
	Enqueue(job MailJob) bool
}

// CheckoutResult is returned to the caller after a successful charge and
// persist.
type CheckoutResult struct {
	OrderID primitive.ObjectID
	BuyerID primitive.ObjectID
}

type OrderService struct {
	orders  OrderStore
	gateway gateway.Gateway
	mailer  MailEnqueuer
}

func NewOrderService(orders OrderStore, gw gateway.Gateway, mailer MailEnqueuer) *OrderService {
	return &OrderService{orders: orders, gateway: gw, mailer: mailer}
}

// ClientToken fetches a gateway client token for the storefront.
func (s *OrderService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.gateway.GenerateClientToken(ctx)
	if err != nil {
		return "", apperrors.Transport("failed to generate payment token", err)
	}
	return token, nil
}

// Checkout charges the cart total against the gateway and, iff the charge
// succeeds, persists exactly one order. A declined charge persists nothing
// and surfaces the gateway's stated reason. Declines are never retried
// here: a retry is a new client request with a new nonce.
func (s *OrderService) Checkout(ctx context.Context, buyer primitive.ObjectID, cart []models.CartItem, nonce string) (*CheckoutResult, error) {
	if len(cart) == 0 {
		return nil, apperrors.Validation("Cart must not be empty")
	}
	if nonce == "" {
		return nil, apperrors.Validation("Payment nonce is required")
	}

	var total float64
	items := make([]models.LineItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID.IsZero() {
			return nil, apperrors.Validation("Cart item is missing a product reference")
		}
		if item.Price < 0 {
			return nil, apperrors.Validation("Cart item price must not be negative")
		}
		total += item.Price
		items = append(items, models.LineItem{ProductID: item.ProductID, Price: item.Price})
	}

	// The key ties the gateway transaction to the stored order so a crash
	// between charge and persist can be reconciled afterwards.
	idempotencyKey := uuid.NewString()

	result, err := s.gateway.Sale(ctx, gateway.SaleRequest{
		Amount:              total,
		Nonce:               nonce,
		OrderID:             idempotencyKey,
		SubmitForSettlement: true,
	})
	if err != nil {
		return nil, apperrors.Transport("payment gateway unreachable", err)
	}
	if !result.Success {
		return nil, apperrors.Declined(result.Message)
	}

	order := &models.Order{
		Products: items,
		Payment: models.PaymentResult{
			Success:       true,
			TransactionID: result.TransactionID,
			Status:        result.Status,
			Amount:        total,
		},
		Buyer:          buyer,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	// The charge has already happened; the persist must run to completion
	// even if the client disconnects before the response is written.
	persistCtx := context.WithoutCancel(ctx)
	orderID, err := s.orders.Insert(persistCtx, order)
	if err != nil {
		zap.L().Error("charged but failed to persist order; needs reconciliation",
			zap.String("idempotency_key", idempotencyKey),
			zap.String("transaction_id", result.TransactionID),
			zap.String("buyer", buyer.Hex()),
			zap.Float64("amount", total),
			zap.Error(err),
		)
		return nil, apperrors.Internal(err)
	}

	if s.mailer != nil {
		if !s.mailer.Enqueue(MailJob{OrderID: orderID, BuyerID: buyer}) {
			zap.L().Warn("mail queue full, confirmation mail dropped",
				zap.String("order_id", orderID.Hex()))
		}
	}

	return &CheckoutResult{OrderID: orderID, BuyerID: buyer}, nil
}
