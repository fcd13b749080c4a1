package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/repository"
)

type OverlapValidator struct{}

func NewOverlapValidator() *OverlapValidator {
	return &OverlapValidator{}
}

// ValidateNoOverlap проверяет, что [start, end) не пересекается с неотменёнными
// записями, кроме excludeID. Запись, заканчивающаяся ровно в start, не мешает.
func (v *OverlapValidator) ValidateNoOverlap(ctx context.Context, store repository.AppointmentStore, start, end time.Time, excludeID int64) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	conflicts, err := store.FindOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("find overlapping appointments: %w", err)
	}

	if len(conflicts) > 0 {
		c := conflicts[0]
		return fmt.Errorf("%w: time slot overlaps appointment %d (%s - %s)",
			ErrConflict, c.ID, c.StartTime.Format(time.RFC3339), c.EndTime.Format(time.RFC3339))
	}

	return nil
}
