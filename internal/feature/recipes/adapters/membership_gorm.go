package adapters

import (
	"context"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/usecase"
	"foodgram_backend/internal/platform/db"
)

// membershipGorm はMembershipRepositoryインターフェースのGORM実装です。
// お気に入りと買い物かごは同じ形の別テーブルなので、行の生成関数で切り替えます。
type membershipGorm struct {
	db     *gorm.DB
	newRow func(userID, recipeID uint) entity.Membership
}

var _ usecase.MembershipRepository = (*membershipGorm)(nil)

// NewMembershipRepository はnewRowが作る行のテーブルを扱うmembershipGormを生成します。
// 例: NewMembershipRepository(db, entity.NewFavorite)
func NewMembershipRepository(db *gorm.DB, newRow func(userID, recipeID uint) entity.Membership) *membershipGorm {
	return &membershipGorm{db: db, newRow: newRow}
}

// Add は(userID, recipeID)の行を作成します。
func (r *membershipGorm) Add(ctx context.Context, userID, recipeID uint) error {
	if err := r.db.WithContext(ctx).Create(r.newRow(userID, recipeID)).Error; err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return usecase.ErrMembershipExists
		case db.IsForeignKeyViolation(err):
			return usecase.ErrRecipeNotFound
		}
		return err
	}
	return nil
}

// Remove は(userID, recipeID)の行を削除します。該当行がなければErrMembershipMissingを返します。
func (r *membershipGorm) Remove(ctx context.Context, userID, recipeID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(r.newRow(0, 0))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrMembershipMissing
	}
	return nil
}
