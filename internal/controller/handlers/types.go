package handlers

import (
	"time"

	"github.com/Freeeeeet/appointment_service/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	appointmentService *service.AppointmentService
	adminChatIDs       map[int64]bool
	location           *time.Location
	logger             *zap.Logger
	now                func() time.Time
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	appointmentService *service.AppointmentService,
	adminChatIDs []int64,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	admins := make(map[int64]bool, len(adminChatIDs))
	for _, id := range adminChatIDs {
		admins[id] = true
	}
	if location == nil {
		location = time.Local
	}

	return &Handlers{
		appointmentService: appointmentService,
		adminChatIDs:       admins,
		location:           location,
		logger:             logger,
		now:                time.Now,
	}
}
