package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// класс advisory-блокировок по дням
const appointmentLockClass = 7341

const appointmentColumns = `id, user_id, title, description, start_time, end_time, status, created_at, updated_at`

type AppointmentRepository struct {
	pool *pgxpool.Pool
	db   base.DBTX
	// lockRows - GetByID внутри Exclusive берёт строку FOR UPDATE
	lockRows bool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, db: pool}
}

var _ AppointmentStore = (*AppointmentRepository)(nil)

// Create создаёт новую запись
func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	query := `
		INSERT INTO appointments (user_id, title, description, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.UserID,
		a.Title,
		a.Description,
		a.StartTime,
		a.EndTime,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// Update обновляет название, описание и интервал записи.
// Статус меняет только UpdateStatus, в a.Status возвращается текущий.
func (r *AppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	query := `
		UPDATE appointments
		SET title = $1, description = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING status, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.Title,
		a.Description,
		a.StartTime,
		a.EndTime,
		a.ID,
	).Scan(&a.Status, &a.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("update appointment: %w", err)
	}

	return nil
}

// UpdateStatus меняет статус записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID получает запись вместе с владельцем
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT a.id, a.user_id, a.title, a.description, a.start_time, a.end_time, a.status, a.created_at, a.updated_at,
		       u.id, u.email, u.first_name, u.last_name, u.role, u.created_at
		FROM appointments a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	if r.lockRows {
		query += ` FOR UPDATE OF a`
	}

	var a model.Appointment
	var u model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.UserID,
		&a.Title,
		&a.Description,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	a.User = &u
	return &a, nil
}

// Exists проверяет существование записи
func (r *AppointmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check appointment exists: %w", err)
	}
	return exists, nil
}

// Delete удаляет запись
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByUserID получает все записи пользователя
func (r *AppointmentRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1
		ORDER BY start_time
	`
	return r.list(ctx, "get appointments by user", query, userID)
}

// GetByUserIDAndStatus получает записи пользователя с указанным статусом
func (r *AppointmentRepository) GetByUserIDAndStatus(ctx context.Context, userID int64, status model.AppointmentStatus) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1 AND status = $2
		ORDER BY start_time
	`
	return r.list(ctx, "get appointments by user and status", query, userID, status)
}

// GetAll получает все записи
func (r *AppointmentRepository) GetAll(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		ORDER BY start_time
	`
	return r.list(ctx, "get all appointments", query)
}

// FindBetween получает записи внутри [from, to]
func (r *AppointmentRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE start_time >= $1 AND end_time <= $2
		ORDER BY start_time
	`
	return r.list(ctx, "find appointments between", query, from, to)
}

// FindOverlapping получает активные записи, пересекающие [start, end)
func (r *AppointmentRepository) FindOverlapping(ctx context.Context, start, end time.Time, excludeID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status <> 'CANCELLED'
		  AND start_time < $2
		  AND end_time > $1
		  AND id <> $3
		ORDER BY start_time
	`
	return r.list(ctx, "find overlapping appointments", query, start, end, excludeID)
}

// FindByDay получает записи, пересекающие окно дня
func (r *AppointmentRepository) FindByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time
	`
	return r.list(ctx, "find appointments by day", query, dayStart, dayEnd)
}

// CountByStatus считает записи по статусу
func (r *AppointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count appointments by status: %w", err)
	}
	return n, nil
}

// FindUpcoming получает предстоящие запланированные записи
func (r *AppointmentRepository) FindUpcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE start_time >= $1 AND status = 'SCHEDULED'
		ORDER BY start_time
	`
	return r.list(ctx, "find upcoming appointments", query, now)
}

// Exclusive берёт advisory-блокировки по дням в транзакции и выполняет в ней fn.
// Вложенный вызов использует внешнюю транзакцию.
func (r *AppointmentRepository) Exclusive(ctx context.Context, start, end time.Time, fn func(ctx context.Context, tx AppointmentStore) error) error {
	if r.pool == nil {
		return fn(ctx, r)
	}

	return base.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, day := range LockDays(start, end) {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, appointmentLockClass, int32(day)); err != nil {
				return fmt.Errorf("lock day %d: %w", day, err)
			}
		}
		return fn(ctx, &AppointmentRepository{db: tx, lockRows: true})
	})
}

func (r *AppointmentRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var a model.Appointment
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Title,
			&a.Description,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointments, nil
}
