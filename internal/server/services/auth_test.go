package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authstack/internal/common"
	"authstack/internal/server/config"
	"authstack/internal/server/models"
)

type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[string]*models.User)}
}

func (r *memUserRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.users[key]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.nextID++
	created := &models.User{ID: r.nextID, Email: user.Email, PasswordHash: user.PasswordHash}
	r.users[key] = created
	return created, nil
}

func (r *memUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type memSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionRepository() *memSessionRepository {
	return &memSessionRepository{sessions: make(map[string]*models.Session)}
}

func (r *memSessionRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *memSessionRepository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memSessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepository) DeleteExpired(_ context.Context) error {
	return nil
}

func (r *memSessionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func newTestService(validity time.Duration) (*AuthService, *memSessionRepository) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.SessionValidityDuration = validity
	sessions := newMemSessionRepository()
	return NewAuthService(newMemUserRepository(), sessions, cfg), sessions
}

func TestSignUp_CreatesUserAndSession(t *testing.T) {
	svc, sessions := newTestService(time.Hour)

	user, token, err := svc.SignUp(context.Background(), "new_user@example.com", "password123", "password123")

	require.NoError(t, err)
	assert.Equal(t, "new_user@example.com", user.Email)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, sessions.count())
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		password     string
		confirmation string
		want         []string
	}{
		{
			name:         "blank email",
			password:     "password123",
			confirmation: "password123",
			want:         []string{"Email can't be blank"},
		},
		{
			name:         "email without at sign",
			email:        "invalid",
			password:     "password123",
			confirmation: "password123",
			want:         []string{"Email is invalid"},
		},
		{
			name:         "email with spaces",
			email:        "a b@example.com",
			password:     "password123",
			confirmation: "password123",
			want:         []string{"Email is invalid"},
		},
		{
			name:  "blank password",
			email: "user@example.com",
			want:  []string{"Password can't be blank"},
		},
		{
			name:         "short password",
			email:        "user@example.com",
			password:     "1234567",
			confirmation: "1234567",
			want:         []string{"Password is too short (minimum is 8 characters)"},
		},
		{
			name:         "mismatched confirmation",
			email:        "user@example.com",
			password:     "password123",
			confirmation: "password124",
			want:         []string{"Password confirmation doesn't match Password"},
		},
		{
			name: "everything wrong at once",
			want: []string{"Email can't be blank", "Password can't be blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(time.Hour)
			_, _, err := svc.SignUp(context.Background(), tt.email, tt.password, tt.confirmation)

			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Messages)
		})
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "taken@example.com", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.SignUp(ctx, "taken@example.com", "password123", "password123")
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Email has already been taken"}, ve.Messages)
}

func TestSignIn_IssuesFreshSession(t *testing.T) {
	svc, sessions := newTestService(time.Hour)
	ctx := context.Background()

	_, signUpToken, err := svc.SignUp(ctx, "user@example.com", "password123", "password123")
	require.NoError(t, err)

	user, signInToken, err := svc.SignIn(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NotEqual(t, signUpToken, signInToken)
	assert.Equal(t, 2, sessions.count())
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "known@example.com", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "unknown@example.com", "password123")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, _, err = svc.SignIn(ctx, "known@example.com", "wrong-password")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestAuthenticate_ResolvesUser(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	created, token, err := svc.SignUp(ctx, "user@example.com", "password123", "password123")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, created.Email, user.Email)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	svc, _ := newTestService(time.Hour)
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "user@example.com", "password123", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	svc, sessions := newTestService(time.Hour)
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "user@example.com", "password123", "password123")
	require.NoError(t, err)

	// Backdate the session record past its expiry.
	sessions.mu.Lock()
	for _, s := range sessions.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}
	sessions.mu.Unlock()

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, 0, sessions.count())
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSignOut_Idempotent(t *testing.T) {
	svc, sessions := newTestService(time.Hour)
	ctx := context.Background()

	_, token, err := svc.SignUp(ctx, "user@example.com", "password123", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, token))
	require.NoError(t, svc.SignOut(ctx, token))
	assert.Equal(t, 0, sessions.count())
}

func TestSignOut_MalformedToken(t *testing.T) {
	svc, _ := newTestService(time.Hour)

	assert.NoError(t, svc.SignOut(context.Background(), "garbage"))
}
