package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapValidator(t *testing.T) {
	ctx := context.Background()
	store := memory.NewAppointmentStore(nil)

	existing := &model.Appointment{UserID: 1, Title: "busy", StartTime: jan1(9, 0), EndTime: jan1(10, 0), Status: model.AppointmentStatusScheduled}
	require.NoError(t, store.Create(ctx, existing))
	cancelled := &model.Appointment{UserID: 1, Title: "gone", StartTime: jan1(12, 0), EndTime: jan1(13, 0), Status: model.AppointmentStatusCancelled}
	require.NoError(t, store.Create(ctx, cancelled))

	v := NewOverlapValidator()

	tests := []struct {
		name      string
		startH    int
		startM    int
		endH      int
		endM      int
		excludeID int64
		wantErr   error
	}{
		{"free interval", 10, 30, 11, 30, 0, nil},
		{"touches end", 10, 0, 11, 0, 0, nil},
		{"touches start", 8, 0, 9, 0, 0, nil},
		{"inside", 9, 15, 9, 45, 0, ErrConflict},
		{"covers", 8, 0, 11, 0, 0, ErrConflict},
		{"partial overlap", 9, 30, 10, 30, 0, ErrConflict},
		{"same interval", 9, 0, 10, 0, 0, ErrConflict},
		{"excluded self", 9, 0, 10, 0, existing.ID, nil},
		{"cancelled does not block", 12, 0, 13, 0, 0, nil},
		{"empty interval", 9, 0, 9, 0, 0, ErrInvalidInput},
		{"reversed interval", 11, 0, 10, 0, 0, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNoOverlap(ctx, store, jan1(tt.startH, tt.startM), jan1(tt.endH, tt.endM), tt.excludeID)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
