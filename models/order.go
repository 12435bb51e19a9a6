package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one client-submitted cart line: a product reference and the
// price captured at checkout time. Prices are snapshots, not live lookups,
// so later catalog changes never affect historical orders.
type CartItem struct {
	ProductID primitive.ObjectID `json:"_id" binding:"required"`
	Price     float64            `json:"price"`
}

// LineItem is the persisted form of a cart line.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Price     float64            `bson:"price" json:"price"`
}

// PaymentResult is the gateway transaction record stored on the order.
type PaymentResult struct {
	Success       bool    `bson:"success" json:"success"`
	TransactionID string  `bson:"transactionId" json:"transactionId"`
	Status        string  `bson:"status" json:"status"`
	Amount        float64 `bson:"amount" json:"amount"`
}

// Order is created exactly once per successful gateway transaction and is
// never mutated or deleted afterwards.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Products       []LineItem         `bson:"products" json:"products"`
	Payment        PaymentResult      `bson:"payment" json:"payment"`
	Buyer          primitive.ObjectID `bson:"buyer" json:"buyer"`
	IdempotencyKey string             `bson:"idempotencyKey" json:"idempotencyKey"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
