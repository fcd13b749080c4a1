// Package memory содержит хранилища в памяти с той же семантикой, что и
// репозитории PostgreSQL. Используются в тестах и для локального запуска.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/appointment_service/internal/model"
	"github.com/Freeeeeet/appointment_service/internal/repository"
)

type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]*model.User)}
}

var _ repository.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}

	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := s.GetByEmail(ctx, email)
	return u != nil, err
}

func (s *UserStore) GetAll(_ context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		users = append(users, &cp)
	}
	slices.SortFunc(users, func(a, b *model.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

type AppointmentStore struct {
	// excl сериализует Exclusive, mu защищает данные
	excl sync.Mutex
	mu   sync.RWMutex

	nextID       int64
	appointments map[int64]*model.Appointment
	users        *UserStore
}

// NewAppointmentStore создаёт хранилище. users используется для JOIN в GetByID и может быть nil.
func NewAppointmentStore(users *UserStore) *AppointmentStore {
	return &AppointmentStore{
		appointments: make(map[int64]*model.Appointment),
		users:        users,
	}
}

var _ repository.AppointmentStore = (*AppointmentStore)(nil)

func (s *AppointmentStore) Create(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.nextID++
	a.ID = s.nextID
	a.CreatedAt = now
	a.UpdatedAt = now
	s.appointments[a.ID] = clone(a)
	return nil
}

func (s *AppointmentStore) Update(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.appointments[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = a.Title
	existing.Description = a.Description
	existing.StartTime = a.StartTime
	existing.EndTime = a.EndTime
	existing.UpdatedAt = time.Now()

	a.Status = existing.Status
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = existing.UpdatedAt
	return nil
}

func (s *AppointmentStore) UpdateStatus(_ context.Context, id int64, status model.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Status = status
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *AppointmentStore) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	s.mu.RLock()
	a, ok := s.appointments[id]
	if ok {
		a = clone(a)
	}
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if s.users != nil {
		u, err := s.users.GetByID(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		a.User = u
	}
	return a, nil
}

func (s *AppointmentStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.appointments[id]
	return ok, nil
}

func (s *AppointmentStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (s *AppointmentStore) GetByUserID(_ context.Context, userID int64) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool { return a.UserID == userID }), nil
}

func (s *AppointmentStore) GetByUserIDAndStatus(_ context.Context, userID int64, status model.AppointmentStatus) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool {
		return a.UserID == userID && a.Status == status
	}), nil
}

func (s *AppointmentStore) GetAll(_ context.Context) ([]*model.Appointment, error) {
	return s.filter(func(*model.Appointment) bool { return true }), nil
}

func (s *AppointmentStore) FindBetween(_ context.Context, from, to time.Time) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool {
		return !a.StartTime.Before(from) && !a.EndTime.After(to)
	}), nil
}

func (s *AppointmentStore) FindOverlapping(_ context.Context, start, end time.Time, excludeID int64) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool {
		return a.ID != excludeID && a.IsActive() && a.Overlaps(start, end)
	}), nil
}

func (s *AppointmentStore) FindByDay(_ context.Context, dayStart, dayEnd time.Time) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool { return a.Overlaps(dayStart, dayEnd) }), nil
}

func (s *AppointmentStore) CountByStatus(_ context.Context, status model.AppointmentStatus) (int64, error) {
	return int64(len(s.filter(func(a *model.Appointment) bool { return a.Status == status }))), nil
}

func (s *AppointmentStore) FindUpcoming(_ context.Context, now time.Time) ([]*model.Appointment, error) {
	return s.filter(func(a *model.Appointment) bool {
		return a.Status == model.AppointmentStatusScheduled && !a.StartTime.Before(now)
	}), nil
}

// Exclusive выполняет fn под общим мьютексом. Отката нет: хранилище в памяти
// не поддерживает транзакции.
func (s *AppointmentStore) Exclusive(ctx context.Context, _, _ time.Time, fn func(ctx context.Context, tx repository.AppointmentStore) error) error {
	s.excl.Lock()
	defer s.excl.Unlock()

	return fn(ctx, exclusiveView{s})
}

// exclusiveView - хранилище внутри Exclusive; повторный Exclusive не блокирует
type exclusiveView struct {
	*AppointmentStore
}

func (v exclusiveView) Exclusive(ctx context.Context, _, _ time.Time, fn func(ctx context.Context, tx repository.AppointmentStore) error) error {
	return fn(ctx, v)
}

func (s *AppointmentStore) filter(keep func(a *model.Appointment) bool) []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Appointment
	for _, a := range s.appointments {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	slices.SortFunc(out, func(a, b *model.Appointment) int {
		if c := a.StartTime.Compare(b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func clone(a *model.Appointment) *model.Appointment {
	cp := *a
	cp.User = nil
	return &cp
}
