// Package adapters はusersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
	"foodgram_backend/internal/platform/db"
)

// isSubscribedColumn は閲覧者が各ユーザーをフォローしているかを計算する相関サブクエリです。
const isSubscribedColumn = "(SELECT COUNT(*) FROM subscriptions s WHERE s.following_id = users.id AND s.user_id = ?) > 0 AS is_subscribed"

// userGorm はUserRepositoryインターフェースのGORM実装です。
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository は指定されたDB接続でuserGormの新しいインスタンスを生成します。
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーを保存します。メールまたはユーザー名の重複はErrDuplicateUserになります。
func (r *userGorm) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Taken はメールアドレスとユーザー名がすでに使われているかを返します。
func (r *userGorm) Taken(ctx context.Context, email, username string) (bool, bool, error) {
	var found []entity.User
	if err := r.db.WithContext(ctx).
		Select("email", "username").
		Where("email = ? OR username = ?", email, username).
		Find(&found).Error; err != nil {
		return false, false, err
	}

	var emailTaken, usernameTaken bool
	for _, u := range found {
		emailTaken = emailTaken || u.Email == email
		usernameTaken = usernameTaken || u.Username == username
	}
	return emailTaken, usernameTaken, nil
}

// List はユーザー名順にユーザーの1ページと総件数を返します。
func (r *userGorm) List(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.Profile
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("users.*, "+isSubscribedColumn, viewerID).
		Order("users.username ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Profile はviewerIDから見たユーザーidを返します。
func (r *userGorm) Profile(ctx context.Context, viewerID, id uint) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("users.*, "+isSubscribedColumn, viewerID).
		Where("users.id = ?", id).
		Take(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdatePassword はパスワードハッシュを更新します。
func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.updateColumn(ctx, id, "password", hash)
}

// UpdateAvatar はアバターのストレージキーを更新します。空文字はアバターの削除を意味します。
func (r *userGorm) UpdateAvatar(ctx context.Context, id uint, key string) error {
	return r.updateColumn(ctx, id, "avatar", key)
}

func (r *userGorm) updateColumn(ctx context.Context, id uint, column string, value any) error {
	result := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Search はメールアドレスまたはユーザー名にqueryを含むユーザーを返します（大文字小文字を区別しない）。
func (r *userGorm) Search(ctx context.Context, query string, limit int) ([]entity.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []entity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Username はuserIDのユーザー名を返します。買い物リストの見出しに使われます。
func (r *userGorm) Username(ctx context.Context, id uint) (string, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
