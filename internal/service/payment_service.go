package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/payment"
	"go.uber.org/zap"
)

// PaymentConfig - публичные настройки для клиента
type PaymentConfig struct {
	PublishableKey string `json:"publishableKey"`
	Currency       string `json:"currency"`
}

// PaymentConfirmation - состояние платежа для клиента
type PaymentConfirmation struct {
	TransactionID string  `json:"transactionId"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	Amount        float64 `json:"amount"`
}

type PaymentService struct {
	gateway        payment.Gateway
	appointments   *AppointmentService
	publishableKey string
	currency       string
	logger         *zap.Logger
}

// NewPaymentService создаёт сервис платежей. gateway может быть nil, тогда платежи отключены.
func NewPaymentService(gateway payment.Gateway, appointments *AppointmentService, publishableKey, currency string, logger *zap.Logger) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{
		gateway:        gateway,
		appointments:   appointments,
		publishableKey: publishableKey,
		currency:       strings.ToLower(currency),
		logger:         logger,
	}
}

// Config возвращает публичный ключ шлюза
func (s *PaymentService) Config() PaymentConfig {
	return PaymentConfig{
		PublishableKey: s.publishableKey,
		Currency:       s.currency,
	}
}

// CreateIntent создаёт платёж на amount (в основных единицах валюты).
// appointmentID необязателен; если задан, запись должна принадлежать userID.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64, appointmentID, userID int64, isAdmin bool) (*model.PaymentIntent, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: payments are not configured", ErrInvalidInput)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	cents := int64(math.Round(amount * 100))
	if cents <= 0 {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", ErrInvalidInput)
	}
	metadata := map[string]string{"user_id": strconv.FormatInt(userID, 10)}

	if appointmentID != 0 {
		if _, err := s.appointments.GetForOwner(ctx, appointmentID, userID, isAdmin); err != nil {
			return nil, err
		}
		metadata["appointment_id"] = strconv.FormatInt(appointmentID, 10)
	}

	intent, err := s.gateway.CreateIntent(ctx, cents, s.currency, metadata)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment intent created",
		zap.String("payment_intent_id", intent.ID),
		zap.Int64("amount", cents),
		zap.Int64("user_id", userID),
		zap.Int64("appointment_id", appointmentID),
	)

	return intent, nil
}

// Confirm получает статус платежа
func (s *PaymentService) Confirm(ctx context.Context, intentID string) (*PaymentConfirmation, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: payments are not configured", ErrInvalidInput)
	}
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return nil, fmt.Errorf("%w: payment intent id is required", ErrInvalidInput)
	}

	intent, err := s.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	return &PaymentConfirmation{
		TransactionID: intent.ID,
		Status:        intent.Status,
		Message:       PaymentStatusMessage(intent.Status),
		Amount:        float64(intent.Amount) / 100,
	}, nil
}

// PaymentStatusMessage переводит статус шлюза в сообщение для пользователя
func PaymentStatusMessage(status string) string {
	switch status {
	case "succeeded":
		return "Payment processed successfully"
	case "processing":
		return "Payment is processing"
	case "requires_payment_method":
		return "Payment failed, please try another payment method"
	case "requires_confirmation":
		return "Payment requires confirmation"
	case "requires_action":
		return "Payment requires additional action"
	default:
		return "Payment status: " + status
	}
}
