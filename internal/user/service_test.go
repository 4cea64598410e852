package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templeops/temple-booking-backend/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.byID[u.ID] = &clone
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepository) AnonymizeDonations(ctx context.Context, id string) error {
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	// Low cost keeps the test fast; production uses the configured cost.
	hasher := auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)
	return NewService(repo, hasher), repo
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), "  Devotee@Example.COM ", "secret-password", "Devotee", "")
	require.NoError(t, err)
	assert.Equal(t, "devotee@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "secret-password", u.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "devotee@example.com", "secret-password", "", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "DEVOTEE@example.com", "other-password", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "devotee@example.com", "short", "", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()

	registered, err := svc.Register(context.Background(), "devotee@example.com", "secret-password", "", "")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "devotee@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	// Login stamps last_login_at.
	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	_, err = svc.Login(context.Background(), "devotee@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown emails fail the same way as bad passwords.
	_, err = svc.Login(context.Background(), "nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), "devotee@example.com", "secret-password", "", "")
	require.NoError(t, err)

	repo.mu.Lock()
	repo.byID[u.ID].IsActive = false
	repo.byEmail[u.Email].IsActive = false
	repo.mu.Unlock()

	_, err = svc.Login(context.Background(), "devotee@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
