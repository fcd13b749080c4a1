package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
)

func TestToModel(t *testing.T) {
	got := toModel(&stripe.PaymentIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret",
		Status:       stripe.PaymentIntentStatusSucceeded,
		Amount:       2550,
		Currency:     stripe.CurrencyUSD,
	})

	assert.Equal(t, "pi_123", got.ID)
	assert.Equal(t, "pi_123_secret", got.ClientSecret)
	assert.Equal(t, "succeeded", got.Status)
	assert.EqualValues(t, 2550, got.Amount)
	assert.Equal(t, "usd", got.Currency)
}
