package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	users        *memory.UserStore
	appointments *memory.AppointmentStore
	svc          *AppointmentService
	userSvc      *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserStore()
	appointments := memory.NewAppointmentStore(users)

	cfg := DefaultSlotConfig()
	cfg.Location = time.UTC

	logger := zap.NewNop()
	return &fixture{
		users:        users,
		appointments: appointments,
		svc: NewAppointmentService(
			appointments,
			users,
			NewOverlapValidator(),
			NewSlotGenerator(appointments, cfg),
			logger,
		),
		userSvc: NewUserService(users, logger),
	}
}

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "x", FirstName: "F", LastName: "L", Role: model.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// jan1 возвращает 2024-01-01 hh:mm UTC
func jan1(hour, minute int) time.Time {
	return time.Date(2024, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func input(title string, start, end time.Time) AppointmentInput {
	return AppointmentInput{Title: title, StartTime: start, EndTime: end}
}
