package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/braintree-go/braintree-go"
)

// BraintreeGateway wraps the Braintree SDK client. It is initialized once
// at startup from configured credentials and is safe for concurrent use.
type BraintreeGateway struct {
	bt *braintree.Braintree
}

func NewBraintreeGateway(environment, merchantID, publicKey, privateKey string) (*BraintreeGateway, error) {
	if merchantID == "" || publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("braintree credentials are not configured")
	}
	env := braintree.Sandbox
	if environment == "production" {
		env = braintree.Production
	}
	return &BraintreeGateway{bt: braintree.New(env, merchantID, publicKey, privateKey)}, nil
}

func (g *BraintreeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	return g.bt.ClientToken().Generate(ctx)
}

func (g *BraintreeGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(int64(math.Round(req.Amount*100)), 2),
		PaymentMethodNonce: req.Nonce,
		OrderId:            req.OrderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: req.SubmitForSettlement,
		},
	})
	if err != nil {
		// An API-level error means the gateway was reached and refused the
		// charge; anything else is a transport failure.
		var btErr *braintree.BraintreeError
		if errors.As(err, &btErr) {
			return &SaleResult{Success: false, Message: btErr.Error()}, nil
		}
		return nil, err
	}
	return &SaleResult{
		Success:       true,
		TransactionID: tx.Id,
		Status:        fmt.Sprintf("%v", tx.Status),
	}, nil
}
