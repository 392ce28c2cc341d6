package adapters

import (
	"context"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
)

// recipeSummaryGorm は著者カード用のレシピ概要を読み出します。
type recipeSummaryGorm struct {
	db *gorm.DB
}

var _ usecase.RecipeSummaryRepository = (*recipeSummaryGorm)(nil)

// NewRecipeSummaryRepository はrecipeSummaryGormの新しいインスタンスを生成します。
func NewRecipeSummaryRepository(db *gorm.DB) *recipeSummaryGorm {
	return &recipeSummaryGorm{db: db}
}

// ListByAuthor は著者のレシピを公開日時順に返します。limitが正の場合のみ件数を制限します。
func (r *recipeSummaryGorm) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]entity.RecipeSummary, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	recipes := []entity.RecipeSummary{}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthor は著者のレシピ数を返します。
func (r *recipeSummaryGorm) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.RecipeSummary{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
