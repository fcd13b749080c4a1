package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
)

// ErrNotFound - изменение не затронуло ни одной строки
var ErrNotFound = errors.New("record not found")

// ErrDuplicate - вставка нарушила ограничение уникальности
var ErrDuplicate = errors.New("duplicate record")

// AppointmentStore - хранилище записей.
// Получение одной строки возвращает (nil, nil), если её нет.
type AppointmentStore interface {
	Create(ctx context.Context, a *model.Appointment) error
	// Update пишет только Title, Description, StartTime, EndTime;
	// a.Status заполняется текущим статусом строки
	Update(ctx context.Context, a *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error

	GetByUserID(ctx context.Context, userID int64) ([]*model.Appointment, error)
	GetByUserIDAndStatus(ctx context.Context, userID int64, status model.AppointmentStatus) ([]*model.Appointment, error)
	GetAll(ctx context.Context) ([]*model.Appointment, error)

	// FindBetween - записи, целиком лежащие в [from, to]
	FindBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
	// FindOverlapping - неотменённые записи, пересекающие [start, end),
	// кроме excludeID
	FindOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]*model.Appointment, error)
	// FindByDay - все записи, пересекающие [dayStart, dayEnd), включая отменённые
	FindByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Appointment, error)
	CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error)
	// FindUpcoming - запланированные записи, начинающиеся не раньше now
	FindUpcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error)

	// Exclusive выполняет fn в одной транзакции с блокировкой каждого дня,
	// который задевает [start, end). Вызовы с общим днём выполняются по очереди.
	Exclusive(ctx context.Context, start, end time.Time, fn func(ctx context.Context, tx AppointmentStore) error) error
}

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]*model.User, error)
}

// LockDays возвращает дни (UTC), покрытые [start, end), в виде YYYYMMDD
// по возрастанию. Блокировки берутся в этом порядке.
func LockDays(start, end time.Time) []int64 {
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		end = start.Add(time.Nanosecond)
	}

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	var keys []int64
	for day.Before(end) {
		keys = append(keys, int64(day.Year()*10000+int(day.Month())*100+day.Day()))
		day = day.AddDate(0, 0, 1)
	}
	return keys
}
