// Package payment работает с платёжным шлюзом
package payment

import (
	"context"
	"errors"

	"github.com/Freeeeeet/appointment_service/internal/model"
)

// ErrGateway - шлюз отклонил запрос или недоступен
var ErrGateway = errors.New("payment gateway error")

// Gateway - платёжный шлюз. Суммы в минимальных единицах валюты.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*model.PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*model.PaymentIntent, error)
}
