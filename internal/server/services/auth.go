// Package services contains the server-side business logic. This file
// implements AuthService: sign-up, sign-in, sign-out, and per-request token
// resolution against the session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"authstack/internal/common"
	"authstack/internal/server/auth"
	"authstack/internal/server/config"
	"authstack/internal/server/models"
	"authstack/internal/server/repositories/sessions"
	"authstack/internal/server/repositories/users"
)

// minPasswordLength matches the sign-up validation message below.
const minPasswordLength = 8

// emailFormat mirrors the permissive "local@domain" shape the original
// account validation accepted: no spaces, exactly one @.
var emailFormat = regexp.MustCompile(`\A[^@\s]+@[^@\s]+\z`)

// AuthService provides the authentication operations:
//   - SignUp: validate, create the user, issue a session
//   - SignIn: verify credentials, issue a session
//   - SignOut: revoke the session behind a token
//   - Authenticate: resolve a token to its user
type AuthService struct {
	users                   users.Repository
	sessions                sessions.Repository
	jwtSecret               []byte
	sessionValidityDuration time.Duration

	// dummyHash is compared against when the email is unknown so both
	// sign-in failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuthService constructs an AuthService from the repositories and server
// config.
func NewAuthService(u users.Repository, s sessions.Repository, cfg *config.Config) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost, which is a programming error.
		panic(err)
	}

	return &AuthService{
		users:                   u,
		sessions:                s,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		dummyHash:               dummy,
	}
}

// SignUp validates the parameters, creates the user, and issues a session
// token. Validation failures (including a duplicate email) are returned as
// *common.ValidationError with the full message list.
func (s *AuthService) SignUp(ctx context.Context, email, password, passwordConfirmation string) (*models.User, string, error) {
	if messages := validateSignUp(email, password, passwordConfirmation); len(messages) > 0 {
		return nil, "", &common.ValidationError{Messages: messages}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := s.users.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.NewValidationError("Email has already been taken")
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignIn verifies the credentials and issues a new session token. Unknown
// emails and wrong passwords both return common.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn a comparison anyway; see dummyHash.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SignOut revokes the session named by the token. It is idempotent: an
// already revoked, expired, or malformed token is not an error, the caller
// ends up signed out either way.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

// Authenticate resolves a token to its user: signature and expiry check,
// then session lookup (a deleted session means the token was revoked), then
// user lookup. Every failure mode maps to common.ErrorUnauthorized so the
// transport layer can answer 401 uniformly.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, common.ErrorUnauthorized
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// issueSession stores a new session record and returns the signed token
// that references it.
func (s *AuthService) issueSession(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionValidityDuration),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(userID, session.ID, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func validateSignUp(email, password, passwordConfirmation string) []string {
	var messages []string

	email = strings.TrimSpace(email)
	switch {
	case email == "":
		messages = append(messages, "Email can't be blank")
	case !emailFormat.MatchString(email):
		messages = append(messages, "Email is invalid")
	}

	switch {
	case password == "":
		messages = append(messages, "Password can't be blank")
	case len(password) < minPasswordLength:
		messages = append(messages, fmt.Sprintf("Password is too short (minimum is %d characters)", minPasswordLength))
	}

	if password != passwordConfirmation {
		messages = append(messages, "Password confirmation doesn't match Password")
	}

	return messages
}
