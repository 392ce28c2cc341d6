package adapters

import (
	"context"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
	"foodgram_backend/internal/platform/db"
)

// subscriptionGorm はSubscriptionRepositoryインターフェースのGORM実装です。
type subscriptionGorm struct {
	db *gorm.DB
}

var _ usecase.SubscriptionRepository = (*subscriptionGorm)(nil)

// NewSubscriptionRepository はsubscriptionGormの新しいインスタンスを生成します。
func NewSubscriptionRepository(db *gorm.DB) *subscriptionGorm {
	return &subscriptionGorm{db: db}
}

// Create はフォロー関係を保存します。一意制約とチェック制約の違反はドメインエラーに変換します。
func (r *subscriptionGorm) Create(ctx context.Context, userID, followingID uint) error {
	sub := &entity.Subscription{UserID: userID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return usecase.ErrAlreadySubscribed
		case db.IsCheckViolation(err):
			return usecase.ErrSelfSubscription
		case db.IsForeignKeyViolation(err):
			return usecase.ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete はフォロー関係を削除します。該当行がなければErrNotSubscribedを返します。
func (r *subscriptionGorm) Delete(ctx context.Context, userID, followingID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&entity.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotSubscribed
	}
	return nil
}

// ListFollowing はuserIDがフォローしているユーザーの1ページをユーザー名順に返します。
func (r *subscriptionGorm) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]entity.Profile, int64, error) {
	following := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN subscriptions ON subscriptions.following_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := following.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.Profile
	if err := following.Session(&gorm.Session{}).
		Select("users.*, TRUE AS is_subscribed").
		Order("users.username ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
