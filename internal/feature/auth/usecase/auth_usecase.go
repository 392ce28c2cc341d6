package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"foodgram_backend/internal/feature/auth/domain/entity"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
)

// dummyHash keeps the bcrypt comparison running when the email is unknown.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository looks users up by their login key.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)
}

// JWTGenerator signs tokens bound to a session.
type JWTGenerator interface {
	GenerateToken(userID uint, sessionID string) (string, error)
}

// ClientInfo describes the client a session was opened from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements token authentication.
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	ttl          time.Duration
	maxSessions  int
}

// NewAuthUsecase creates an authUsecase. maxSessions <= 0 disables the per-user cap.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator,
	ttl time.Duration, maxSessions int) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		ttl:          ttl,
		maxSessions:  maxSessions,
	}
}

// Login verifies the credentials, opens a session and returns a signed token.
// The bcrypt comparison runs even for unknown emails to avoid a timing side channel.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	if u.maxSessions > 0 {
		count, err := u.sessions.CountByUserID(ctx, user.ID)
		if err != nil {
			return "", fmt.Errorf("failed to count sessions: %w", err)
		}
		if count >= int64(u.maxSessions) {
			if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
				return "", fmt.Errorf("failed to evict oldest session: %w", err)
			}
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, session.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the session behind the current token.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// ValidateSession returns the owner of an active session.
func (u *authUsecase) ValidateSession(ctx context.Context, sessionID string) (uint, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if session.IsRevoked() {
		return 0, ErrSessionRevoked
	}
	if session.IsExpired() {
		return 0, ErrSessionExpired
	}
	return session.UserID, nil
}

// RevokeAllSessions logs the user out everywhere.
func (u *authUsecase) RevokeAllSessions(ctx context.Context, userID uint) error {
	return u.sessions.RevokeAllByUserID(ctx, userID)
}
