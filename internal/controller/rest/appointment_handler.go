package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type AppointmentHandler struct {
	appointments *service.AppointmentService
	logger       *zap.Logger
}

type AppointmentRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

func (r AppointmentRequest) input() service.AppointmentInput {
	return service.AppointmentInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

func NewAppointmentHandler(appointments *service.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointments: appointments,
		logger:       logger.Named("appointment_handler"),
	}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(c)
	appointment, err := h.appointments.Create(c.Request.Context(), claims.UserID, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "Appointment created successfully", appointment)
}

// List возвращает записи текущего пользователя, ?status= фильтрует по статусу
func (h *AppointmentHandler) List(c *gin.Context) {
	claims := claimsFrom(c)

	var (
		appointments []*model.Appointment
		err          error
	)
	if status := c.Query("status"); status != "" {
		appointments, err = h.appointments.GetForUserByStatus(c.Request.Context(), claims.UserID,
			model.AppointmentStatus(strings.ToUpper(status)))
	} else {
		appointments, err = h.appointments.GetForUser(c.Request.Context(), claims.UserID)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := claimsFrom(c)
	appointment, err := h.appointments.GetForOwner(c.Request.Context(), id, claims.UserID, claims.IsAdmin())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(c)
	appointment, err := h.appointments.UpdateForOwner(c.Request.Context(), id, claims.UserID, claims.IsAdmin(), req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := claimsFrom(c)
	appointment, err := h.appointments.CancelForOwner(c.Request.Context(), id, claims.UserID, claims.IsAdmin())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) Slots(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		respondFail(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.appointments.Slots(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "", slots)
}

// pathID разбирает :id, при ошибке отвечает 400
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondFail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
