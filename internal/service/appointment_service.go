package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository"
	"go.uber.org/zap"
)

// AppointmentInput - данные для создания и изменения записи
type AppointmentInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// AppointmentStats - сводка для админки
type AppointmentStats struct {
	Total     int64 `json:"total"`
	Scheduled int64 `json:"scheduled"`
	Cancelled int64 `json:"cancelled"`
	Upcoming  int64 `json:"upcoming"`
}

type AppointmentService struct {
	appointments repository.AppointmentStore
	users        repository.UserStore
	validator    *OverlapValidator
	slots        *SlotGenerator
	logger       *zap.Logger
	now          func() time.Time
}

func NewAppointmentService(
	appointments repository.AppointmentStore,
	users repository.UserStore,
	validator *OverlapValidator,
	slots *SlotGenerator,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		validator:    validator,
		slots:        slots,
		logger:       logger,
		now:          time.Now,
	}
}

// normalize обрезает пробелы в названии и округляет время до минуты
func (in AppointmentInput) normalize() (AppointmentInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.StartTime = in.StartTime.Truncate(time.Minute)
	in.EndTime = in.EndTime.Truncate(time.Minute)

	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return in, fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}
	if !in.StartTime.Before(in.EndTime) {
		return in, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return in, nil
}

// Create создаёт запись пользователя, если интервал свободен
func (s *AppointmentService) Create(ctx context.Context, userID int64, in AppointmentInput) (*model.Appointment, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	appointment := &model.Appointment{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      model.AppointmentStatusScheduled,
	}

	// Проверка и вставка в одной транзакции под блокировкой дня
	err = s.appointments.Exclusive(ctx, in.StartTime, in.EndTime, func(ctx context.Context, tx repository.AppointmentStore) error {
		if err := s.validator.ValidateNoOverlap(ctx, tx, in.StartTime, in.EndTime, 0); err != nil {
			return err
		}
		if err := tx.Create(ctx, appointment); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment created",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("user_id", userID),
		zap.Time("start", appointment.StartTime),
		zap.Time("end", appointment.EndTime),
	)

	appointment.User = user
	return appointment, nil
}

// GetByID получает запись по ID
func (s *AppointmentService) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
	}
	return appointment, nil
}

// GetForOwner получает запись с проверкой владельца. Чужая запись выглядит как отсутствующая.
func (s *AppointmentService) GetForOwner(ctx context.Context, id, userID int64, isAdmin bool) (*model.Appointment, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && appointment.UserID != userID {
		return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
	}
	return appointment, nil
}

// GetForUser получает все записи пользователя
func (s *AppointmentService) GetForUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	appointments, err := s.appointments.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user appointments: %w", err)
	}
	return nonNil(appointments), nil
}

// GetForUserByStatus получает записи пользователя с указанным статусом
func (s *AppointmentService) GetForUserByStatus(ctx context.Context, userID int64, status model.AppointmentStatus) ([]*model.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	appointments, err := s.appointments.GetByUserIDAndStatus(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("get user appointments by status: %w", err)
	}
	return nonNil(appointments), nil
}

// GetAll получает все записи
func (s *AppointmentService) GetAll(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := s.appointments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all appointments: %w", err)
	}
	return nonNil(appointments), nil
}

// ListBetween получает записи, целиком лежащие в [from, to]
func (s *AppointmentService) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before range start", ErrInvalidInput)
	}

	appointments, err := s.appointments.FindBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find appointments between: %w", err)
	}
	return nonNil(appointments), nil
}

// Update перезаписывает название, описание и интервал записи.
// Интервал проверяется заново, кроме отменённых записей.
func (s *AppointmentService) Update(ctx context.Context, id int64, in AppointmentInput) (*model.Appointment, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var updated *model.Appointment
	err = s.appointments.Exclusive(ctx, in.StartTime, in.EndTime, func(ctx context.Context, tx repository.AppointmentStore) error {
		appointment, err := tx.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get appointment: %w", err)
		}
		if appointment == nil {
			return fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}

		if appointment.IsActive() {
			if err := s.validator.ValidateNoOverlap(ctx, tx, in.StartTime, in.EndTime, id); err != nil {
				return err
			}
		}

		appointment.Title = in.Title
		appointment.Description = in.Description
		appointment.StartTime = in.StartTime
		appointment.EndTime = in.EndTime

		// статус не перезаписывается, параллельная отмена сохраняется
		if err := tx.Update(ctx, appointment); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrNotFound, id)
			}
			return fmt.Errorf("update appointment: %w", err)
		}

		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment updated",
		zap.Int64("appointment_id", id),
		zap.Time("start", updated.StartTime),
		zap.Time("end", updated.EndTime),
	)

	return updated, nil
}

// UpdateForOwner изменяет запись от имени пользователя
func (s *AppointmentService) UpdateForOwner(ctx context.Context, id, userID int64, isAdmin bool, in AppointmentInput) (*model.Appointment, error) {
	if _, err := s.GetForOwner(ctx, id, userID, isAdmin); err != nil {
		return nil, err
	}
	return s.Update(ctx, id, in)
}

// Cancel отменяет запись. Повторная отмена не считается ошибкой.
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == model.AppointmentStatusCancelled {
		return appointment, nil
	}

	if err := s.appointments.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	s.logger.Info("Appointment cancelled",
		zap.Int64("appointment_id", id),
		zap.Int64("user_id", appointment.UserID),
	)

	appointment.Status = model.AppointmentStatusCancelled
	return appointment, nil
}

// CancelForOwner отменяет запись от имени пользователя
func (s *AppointmentService) CancelForOwner(ctx context.Context, id, userID int64, isAdmin bool) (*model.Appointment, error) {
	if _, err := s.GetForOwner(ctx, id, userID, isAdmin); err != nil {
		return nil, err
	}
	return s.Cancel(ctx, id)
}

// Delete удаляет запись без возможности восстановления
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	exists, err := s.appointments.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check appointment: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: appointment %d", ErrNotFound, id)
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.logger.Info("Appointment deleted", zap.Int64("appointment_id", id))
	return nil
}

// Slots возвращает слоты на дату
func (s *AppointmentService) Slots(ctx context.Context, date time.Time) ([]model.TimeSlot, error) {
	return s.slots.SlotsForDate(ctx, date)
}

// SlotConfig возвращает настройки слотов
func (s *AppointmentService) SlotConfig() SlotConfig {
	return s.slots.Config()
}

// Upcoming получает запланированные записи начиная с now
func (s *AppointmentService) Upcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	appointments, err := s.appointments.FindUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find upcoming appointments: %w", err)
	}
	return nonNil(appointments), nil
}

// Stats считает записи по статусам
func (s *AppointmentService) Stats(ctx context.Context) (*AppointmentStats, error) {
	scheduled, err := s.appointments.CountByStatus(ctx, model.AppointmentStatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("count scheduled: %w", err)
	}

	cancelled, err := s.appointments.CountByStatus(ctx, model.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("count cancelled: %w", err)
	}

	upcoming, err := s.appointments.FindUpcoming(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("find upcoming appointments: %w", err)
	}

	return &AppointmentStats{
		Total:     scheduled + cancelled,
		Scheduled: scheduled,
		Cancelled: cancelled,
		Upcoming:  int64(len(upcoming)),
	}, nil
}

func nonNil(appointments []*model.Appointment) []*model.Appointment {
	if appointments == nil {
		return []*model.Appointment{}
	}
	return appointments
}
