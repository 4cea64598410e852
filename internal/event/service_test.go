package event

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeops/temple-booking-backend/internal/temple"
)

func at(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

type fakeRepository struct {
	mu     sync.Mutex
	events map[string]*Event
	regs   map[string]*Registration
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events: make(map[string]*Event),
		regs:   make(map[string]*Registration),
	}
}

func (r *fakeRepository) Create(ctx context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	clone := *e
	r.events[e.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Event
	for _, e := range r.events {
		clone := *e
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(ctx context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return ErrNotFound
	}
	clone := *e
	r.events[e.ID] = &clone
	return nil
}

func (r *fakeRepository) Upcoming(ctx context.Context, now time.Time, limit int) ([]*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Event
	for _, e := range r.events {
		if e.IsActive && !e.StartsAt.Before(now) {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepository) Register(ctx context.Context, reg *Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regs {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID {
			return ErrAlreadyRegistered
		}
	}
	reg.ID = uuid.NewString()
	reg.CreatedAt = time.Now().UTC()
	clone := *reg
	r.regs[reg.ID] = &clone
	return nil
}

func (r *fakeRepository) ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Registration
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			clone := *reg
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListUserRegistrations(ctx context.Context, userID string) ([]*Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Registration
	for _, reg := range r.regs {
		if reg.UserID == userID {
			clone := *reg
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeTempleService struct {
	temples map[string]*temple.Temple
}

func (f *fakeTempleService) Create(ctx context.Context, req temple.CreateRequest) (*temple.Temple, error) {
	panic("not used")
}

func (f *fakeTempleService) GetByID(ctx context.Context, id string) (*temple.Temple, error) {
	t, ok := f.temples[id]
	if !ok {
		return nil, temple.ErrNotFound
	}
	return t, nil
}

func (f *fakeTempleService) List(ctx context.Context, filter temple.Filter) ([]*temple.Temple, int, error) {
	panic("not used")
}

func (f *fakeTempleService) Update(ctx context.Context, id string, req temple.UpdateRequest) (*temple.Temple, error) {
	panic("not used")
}

func newTestService(now time.Time) (Service, string) {
	repo := newFakeRepository()
	tpl := &temple.Temple{ID: uuid.NewString(), Name: "Kashi Vishwanath"}
	temples := &fakeTempleService{temples: map[string]*temple.Temple{tpl.ID: tpl}}
	svc := NewService(repo, temples)
	svc.(*service).now = func() time.Time { return now }
	return svc, tpl.ID
}

func TestRegisterChecksEventState(t *testing.T) {
	now := at(2026, 9, 1, 12)
	svc, templeID := newTestService(now)

	e, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Bhajan Evening",
		StartsAt: at(2026, 9, 10, 18), EndsAt: at(2026, 9, 10, 21),
	})
	require.NoError(t, err)

	userID := uuid.NewString()
	reg, err := svc.Register(context.Background(), e.ID, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.People)

	// Double registration is refused.
	_, err = svc.Register(context.Background(), e.ID, userID, 1)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// Deactivated events stop taking registrations.
	off := false
	_, err = svc.Update(context.Background(), e.ID, UpdateRequest{IsActive: &off})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), e.ID, uuid.NewString(), 1)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestRegisterRejectsEndedEvent(t *testing.T) {
	svc, templeID := newTestService(at(2026, 9, 1, 12))

	e, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Morning Aarti",
		StartsAt: at(2026, 9, 5, 6), EndsAt: at(2026, 9, 5, 8),
	})
	require.NoError(t, err)

	svc.(*service).now = func() time.Time { return at(2026, 9, 6, 12) }

	_, err = svc.Register(context.Background(), e.ID, uuid.NewString(), 1)
	assert.ErrorIs(t, err, ErrEventOver)
}

func TestCreateRejectsBackwardsSchedule(t *testing.T) {
	svc, templeID := newTestService(at(2026, 9, 1, 12))

	_, err := svc.Create(context.Background(), CreateRequest{
		TempleID: templeID, Name: "Broken",
		StartsAt: at(2026, 9, 5, 10), EndsAt: at(2026, 9, 5, 10),
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestUpcomingOrdersAndLimits(t *testing.T) {
	now := at(2026, 9, 1, 0)
	svc, templeID := newTestService(now)

	names := []string{"Third", "First", "Second"}
	starts := []time.Time{at(2026, 9, 20, 10), at(2026, 9, 5, 10), at(2026, 9, 10, 10)}
	for i := range names {
		_, err := svc.Create(context.Background(), CreateRequest{
			TempleID: templeID, Name: names[i],
			StartsAt: starts[i], EndsAt: starts[i].Add(2 * time.Hour),
		})
		require.NoError(t, err)
	}

	upcoming, err := svc.Upcoming(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "First", upcoming[0].Name)
	assert.Equal(t, "Second", upcoming[1].Name)
}
