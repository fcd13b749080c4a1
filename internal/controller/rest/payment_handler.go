package rest

import (
	"net/http"

	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments *service.PaymentService
	logger   *zap.Logger
}

type CreatePaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	AppointmentID int64   `json:"appointmentId"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

type CreatePaymentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func NewPaymentHandler(payments *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		logger:   logger.Named("payment_handler"),
	}
}

func (h *PaymentHandler) Config(c *gin.Context) {
	respond(c, http.StatusOK, "", h.payments.Config())
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(c)
	intent, err := h.payments.CreateIntent(c.Request.Context(), req.Amount, req.AppointmentID, claims.UserID, claims.IsAdmin())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", CreatePaymentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}

func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	confirmation, err := h.payments.Confirm(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, confirmation.Message, confirmation)
}
