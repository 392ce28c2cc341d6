// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/catalog/usecase"
	"foodgram_backend/internal/platform/db"
)

// tagGorm はTagRepositoryインターフェースのGORM実装です。
type tagGorm struct {
	db *gorm.DB
}

var _ usecase.TagRepository = (*tagGorm)(nil)

// NewTagRepository は指定されたDB接続でtagGormの新しいインスタンスを生成します。
func NewTagRepository(db *gorm.DB) *tagGorm {
	return &tagGorm{db: db}
}

// List は名前順にすべてのタグを返します。
func (r *tagGorm) List(ctx context.Context) ([]entity.Tag, error) {
	tags := []entity.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindByID はIDでタグを取得します。
func (r *tagGorm) FindByID(ctx context.Context, id uint) (*entity.Tag, error) {
	var tag entity.Tag
	if err := r.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Create はタグを保存します。
func (r *tagGorm) Create(ctx context.Context, tag *entity.Tag) error {
	return translate(r.db.WithContext(ctx).Create(tag).Error, usecase.ErrDuplicateTag)
}

// Update はタグの名前とスラッグを更新します。
func (r *tagGorm) Update(ctx context.Context, tag *entity.Tag) error {
	result := r.db.WithContext(ctx).Model(tag).Select("name", "slug").Updates(tag)
	if result.Error != nil {
		return translate(result.Error, usecase.ErrDuplicateTag)
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTagNotFound
	}
	return nil
}

// Delete はタグとレシピへの紐付けを1トランザクションで削除します。
func (r *tagGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrTagNotFound
		}
		return nil
	})
}

// translate は一意制約違反をdupに変換します。
func translate(err, dup error) error {
	if err != nil && db.IsUniqueViolation(err) {
		return dup
	}
	return err
}
