package gateway

import "context"

// SaleRequest is one charge attempt: the computed total, the single-use
// payment method nonce, and the idempotency key tagged onto the gateway
// transaction for later reconciliation.
type SaleRequest struct {
	Amount              float64
	Nonce               string
	OrderID             string
	SubmitForSettlement bool
}

// SaleResult is the gateway's answer. Success false with a Message is a
// decline; transport failures are returned as errors instead.
type SaleResult struct {
	Success       bool
	TransactionID string
	Status        string
	Message       string
}

// Gateway is the payment gateway capability injected into the order
// service. Implementations carry their credentials from configuration and
// hold no per-request state.
type Gateway interface {
	GenerateClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}
