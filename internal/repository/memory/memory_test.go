package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func seed(t *testing.T, s *AppointmentStore, start, end time.Time, status model.AppointmentStatus) *model.Appointment {
	t.Helper()
	a := &model.Appointment{UserID: 1, Title: "t", StartTime: start, EndTime: end, Status: status}
	require.NoError(t, s.Create(context.Background(), a))
	return a
}

func TestAppointmentStore_Queries(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(nil)

	a := seed(t, s, at(9, 0), at(10, 0), model.AppointmentStatusScheduled)
	b := seed(t, s, at(11, 30), at(12, 30), model.AppointmentStatusScheduled)
	c := seed(t, s, at(10, 0), at(11, 0), model.AppointmentStatusCancelled)

	t.Run("overlapping ignores cancelled and touching", func(t *testing.T) {
		got, err := s.FindOverlapping(ctx, at(10, 0), at(11, 0), 0)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = s.FindOverlapping(ctx, at(9, 30), at(12, 0), 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, a.ID, got[0].ID)
		assert.Equal(t, b.ID, got[1].ID)
	})

	t.Run("overlapping excludes id", func(t *testing.T) {
		got, err := s.FindOverlapping(ctx, at(9, 0), at(10, 0), a.ID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("between is containment", func(t *testing.T) {
		got, err := s.FindBetween(ctx, at(9, 0), at(12, 0))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, a.ID, got[0].ID)
		assert.Equal(t, c.ID, got[1].ID)
	})

	t.Run("count by status", func(t *testing.T) {
		n, err := s.CountByStatus(ctx, model.AppointmentStatusScheduled)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("upcoming", func(t *testing.T) {
		got, err := s.FindUpcoming(ctx, at(10, 0))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, b.ID, got[0].ID)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := s.GetByID(ctx, a.ID)
		require.NoError(t, err)
		got.Title = "changed"

		again, err := s.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "t", again.Title)
	})
}

func TestAppointmentStore_Mutations(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(nil)

	assert.ErrorIs(t, s.Delete(ctx, 42), repository.ErrNotFound)
	assert.ErrorIs(t, s.UpdateStatus(ctx, 42, model.AppointmentStatusCancelled), repository.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &model.Appointment{ID: 42}), repository.ErrNotFound)

	a := seed(t, s, at(9, 0), at(10, 0), model.AppointmentStatusScheduled)
	got, err := s.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.UpdateStatus(ctx, a.ID, model.AppointmentStatusCancelled))
	got, err = s.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)

	// Update не трогает статус, даже если передан устаревший
	stale := &model.Appointment{ID: a.ID, Title: "moved", StartTime: at(11, 0), EndTime: at(12, 0), Status: model.AppointmentStatusScheduled}
	require.NoError(t, s.Update(ctx, stale))
	assert.Equal(t, model.AppointmentStatusCancelled, stale.Status)
	got, err = s.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, got.Status)
	assert.Equal(t, "moved", got.Title)
	assert.Equal(t, at(11, 0), got.StartTime)

	require.NoError(t, s.Delete(ctx, a.ID))
	ok, err := s.Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppointmentStore_GetByIDJoinsUser(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	u := &model.User{Email: "a@b.c", Role: model.RoleUser}
	require.NoError(t, users.Create(ctx, u))

	s := NewAppointmentStore(users)
	a := &model.Appointment{UserID: u.ID, Title: "t", StartTime: at(9, 0), EndTime: at(10, 0)}
	require.NoError(t, s.Create(ctx, a))

	got, err := s.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "a@b.c", got.User.Email)
}

func TestAppointmentStore_ExclusiveSerializes(t *testing.T) {
	ctx := context.Background()
	s := NewAppointmentStore(nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	inside, maxInside := 0, 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Exclusive(ctx, at(9, 0), at(10, 0), func(ctx context.Context, tx repository.AppointmentStore) error {
				mu.Lock()
				inside++
				maxInside = max(maxInside, inside)
				mu.Unlock()

				time.Sleep(time.Millisecond)

				// вложенный вызов не должен блокироваться
				err := tx.Exclusive(ctx, at(9, 0), at(10, 0), func(context.Context, repository.AppointmentStore) error {
					return nil
				})

				mu.Lock()
				inside--
				mu.Unlock()
				return err
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside)
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u := &model.User{Email: "x@y.z", Role: model.RoleUser}
	require.NoError(t, s.Create(ctx, u))
	assert.NotZero(t, u.ID)

	assert.ErrorIs(t, s.Create(ctx, &model.User{Email: "X@y.z"}), repository.ErrDuplicate)

	ok, err := s.ExistsByEmail(ctx, "x@y.z")
	require.NoError(t, err)
	assert.True(t, ok)

	missing, err := s.GetByEmail(ctx, "nobody@y.z")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
