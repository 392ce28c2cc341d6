package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/platform/media"
	"foodgram_backend/internal/shared/validation"
)

// UserRepository abstracts the persistence layer for users.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	Taken(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error)
	Profile(ctx context.Context, viewerID, id uint) (*entity.Profile, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	UpdateAvatar(ctx context.Context, id uint, key string) error
	Search(ctx context.Context, query string, limit int) ([]entity.User, error)
}

// SessionRevoker ends every session of a user.
type SessionRevoker interface {
	RevokeAllSessions(ctx context.Context, userID uint) error
}

// RegisterInput is the data of a new account.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
	IsStaff   bool
}

// UserUsecase provides account and profile operations.
type UserUsecase struct {
	users    UserRepository
	sessions SessionRevoker
	storage  media.Storage
}

// NewUserUsecase creates a new UserUsecase.
func NewUserUsecase(users UserRepository, sessions SessionRevoker, storage media.Storage) *UserUsecase {
	return &UserUsecase{users: users, sessions: sessions, storage: storage}
}

// Register creates an account. Taken identifiers and weak passwords are
// reported as a *validation.Error.
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	verr := validation.New()

	emailTaken, usernameTaken, err := u.users.Taken(ctx, in.Email, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}
	if emailTaken {
		verr.Add("email", "A user with that email already exists.")
	}
	if usernameTaken {
		verr.Add("username", "A user with that username already exists.")
	}
	checkPassword(verr, "password", in.Password)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		IsStaff:   in.IsStaff,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, validation.Field(validation.NonField, "A user with that email or username already exists.")
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of users ordered by username.
func (u *UserUsecase) List(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error) {
	return u.users.List(ctx, viewerID, limit, offset)
}

// Get returns user id as seen by viewerID. viewerID is 0 for anonymous callers.
func (u *UserUsecase) Get(ctx context.Context, viewerID, id uint) (*entity.Profile, error) {
	return u.users.Profile(ctx, viewerID, id)
}

// SetPassword replaces the password after verifying the current one and
// revokes every session of the user.
func (u *UserUsecase) SetPassword(ctx context.Context, userID uint, current, next string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	verr := validation.New()
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		verr.Add("current_password", "Invalid password.")
	}
	checkPassword(verr, "new_password", next)
	if err := verr.Err(); err != nil {
		return err
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := u.sessions.RevokeAllSessions(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

// SetAvatar stores img as the user's avatar and returns its storage key.
// The previous avatar object is removed.
func (u *UserUsecase) SetAvatar(ctx context.Context, userID uint, img *media.Image) (string, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	key, err := media.Save(ctx, u.storage, media.AvatarsDir, img)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}
	if err := u.users.UpdateAvatar(ctx, userID, key); err != nil {
		u.removeObject(ctx, key)
		return "", err
	}
	u.removeObject(ctx, user.Avatar)
	return key, nil
}

// DeleteAvatar clears the avatar and deletes the stored object.
func (u *UserUsecase) DeleteAvatar(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return nil
	}
	if err := u.users.UpdateAvatar(ctx, userID, ""); err != nil {
		return err
	}
	u.removeObject(ctx, user.Avatar)
	return nil
}

// removeObject deletes a stored object, logging failures. An orphaned file is not fatal.
func (u *UserUsecase) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.storage.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete avatar object", "key", key, "error", err)
	}
}

// IsStaff reports whether userID may use the admin API.
func (u *UserUsecase) IsStaff(ctx context.Context, userID uint) (bool, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsStaff, nil
}

// Search finds users whose email or username contains query.
func (u *UserUsecase) Search(ctx context.Context, query string, limit int) ([]entity.User, error) {
	return u.users.Search(ctx, query, limit)
}
