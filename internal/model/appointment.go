package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// Valid проверяет, что статус известен
func (s AppointmentStatus) Valid() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusCancelled
}

type Appointment struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Заполняется только при JOIN
	User *User `json:"user,omitempty"`
}

// IsActive - запись занимает свой интервал (не отменена)
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}

// Overlaps проверяет пересечение [StartTime, EndTime) с [start, end).
// Соприкасающиеся интервалы не пересекаются.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}
