package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	created  []int64
	metadata map[string]string
	intents  map[string]*model.PaymentIntent
	err      error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*model.PaymentIntent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, amount)
	g.metadata = metadata
	return &model.PaymentIntent{ID: "pi_1", ClientSecret: "secret", Status: "requires_payment_method", Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, id string) (*model.PaymentIntent, error) {
	if g.err != nil {
		return nil, g.err
	}
	pi, ok := g.intents[id]
	if !ok {
		return nil, errors.New("no such payment_intent")
	}
	return pi, nil
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "pay@example.com")
	other := f.user(t, "other@example.com")
	a, err := f.svc.Create(ctx, u.ID, input("paid", jan1(9, 0), jan1(10, 0)))
	require.NoError(t, err)

	gw := &fakeGateway{}
	svc := NewPaymentService(gw, f.svc, "pk_test", "USD", zap.NewNop())

	assert.Equal(t, PaymentConfig{PublishableKey: "pk_test", Currency: "usd"}, svc.Config())

	intent, err := svc.CreateIntent(ctx, 25.5, a.ID, u.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2550, intent.Amount)
	assert.Equal(t, "usd", intent.Currency)
	assert.Equal(t, "1", gw.metadata["appointment_id"])

	_, err = svc.CreateIntent(ctx, 0, 0, u.ID, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateIntent(ctx, -3, 0, u.ID, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// округляется до 0 центов
	_, err = svc.CreateIntent(ctx, 0.004, 0, u.ID, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	intent, err = svc.CreateIntent(ctx, 0.005, 0, u.ID, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, intent.Amount)

	_, err = svc.CreateIntent(ctx, 10, a.ID, other.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []int64{2550, 1}, gw.created)
}

func TestPaymentService_Confirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	gw := &fakeGateway{intents: map[string]*model.PaymentIntent{
		"pi_ok": {ID: "pi_ok", Status: "succeeded", Amount: 1999},
	}}
	svc := NewPaymentService(gw, f.svc, "pk", "", zap.NewNop())

	got, err := svc.Confirm(ctx, "pi_ok")
	require.NoError(t, err)
	assert.Equal(t, "Payment processed successfully", got.Message)
	assert.InDelta(t, 19.99, got.Amount, 0.0001)

	_, err = svc.Confirm(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Confirm(ctx, "pi_missing")
	assert.Error(t, err)
}

func TestPaymentService_NotConfigured(t *testing.T) {
	f := newFixture(t)
	svc := NewPaymentService(nil, f.svc, "", "", zap.NewNop())

	_, err := svc.CreateIntent(context.Background(), 10, 0, 1, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Confirm(context.Background(), "pi")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaymentStatusMessage(t *testing.T) {
	tests := map[string]string{
		"succeeded":               "Payment processed successfully",
		"processing":              "Payment is processing",
		"requires_payment_method": "Payment failed, please try another payment method",
		"requires_confirmation":   "Payment requires confirmation",
		"requires_action":         "Payment requires additional action",
		"canceled":                "Payment status: canceled",
	}
	for status, want := range tests {
		assert.Equal(t, want, PaymentStatusMessage(status))
	}
}
