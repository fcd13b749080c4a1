package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	appointments *service.AppointmentService
	users        *service.UserService
	logger       *zap.Logger
}

func NewAdminHandler(appointments *service.AppointmentService, users *service.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		appointments: appointments,
		users:        users,
		logger:       logger.Named("admin_handler"),
	}
}

// ListAppointments возвращает все записи; с ?from=&to= (RFC3339) только лежащие в окне
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		appointments, err := h.appointments.GetAll(c.Request.Context())
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		respond(c, http.StatusOK, "", appointments)
		return
	}

	from, errFrom := time.Parse(time.RFC3339, fromRaw)
	to, errTo := time.Parse(time.RFC3339, toRaw)
	if errFrom != nil || errTo != nil {
		respondFail(c, http.StatusBadRequest, "from and to must both be RFC3339 timestamps")
		return
	}

	appointments, err := h.appointments.ListBetween(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", appointments)
}

func (h *AdminHandler) Upcoming(c *gin.Context) {
	appointments, err := h.appointments.Upcoming(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", appointments)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.appointments.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", stats)
}

func (h *AdminHandler) UpdateAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := h.appointments.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AdminHandler) CancelAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, err := h.appointments.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.appointments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Appointment deleted by admin",
		zap.Int64("appointment_id", id),
		zap.Int64("admin_id", claimsFrom(c).UserID),
	)
	respond(c, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", users)
}

// UserAppointments возвращает записи выбранного пользователя
func (h *AdminHandler) UserAppointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var (
		appointments []*model.Appointment
		err          error
	)
	if status := c.Query("status"); status != "" {
		appointments, err = h.appointments.GetForUserByStatus(c.Request.Context(), id, model.AppointmentStatus(strings.ToUpper(status)))
	} else {
		appointments, err = h.appointments.GetForUser(c.Request.Context(), id)
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "", appointments)
}
