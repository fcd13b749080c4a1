package payment

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

type StripeGateway struct {
	sc     *client.API
	logger *zap.Logger
}

func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		sc:     client.New(secretKey, nil),
		logger: logger,
	}
}

var _ Gateway = (*StripeGateway)(nil)

// CreateIntent создаёт PaymentIntent с ключом идемпотентности
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		g.logger.Error("Stripe create payment intent failed",
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrGateway, err)
	}

	return toModel(pi), nil
}

// GetIntent получает PaymentIntent по ID
func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.sc.PaymentIntents.Get(id, params)
	if err != nil {
		g.logger.Error("Stripe get payment intent failed",
			zap.String("payment_intent_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: get payment intent: %v", ErrGateway, err)
	}

	return toModel(pi), nil
}

func toModel(pi *stripe.PaymentIntent) *model.PaymentIntent {
	return &model.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}
