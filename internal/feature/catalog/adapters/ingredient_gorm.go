package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/catalog/usecase"
)

// likeEscaper はLIKEパターンのワイルドカードをエスケープします。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ingredientGorm はIngredientRepositoryインターフェースのGORM実装です。
type ingredientGorm struct {
	db *gorm.DB
}

var _ usecase.IngredientRepository = (*ingredientGorm)(nil)

// NewIngredientRepository は指定されたDB接続でingredientGormの新しいインスタンスを生成します。
func NewIngredientRepository(db *gorm.DB) *ingredientGorm {
	return &ingredientGorm{db: db}
}

// Search は名前が prefix で始まる食材を名前順に返します（大文字小文字を区別しない）。
func (r *ingredientGorm) Search(ctx context.Context, prefix string) ([]entity.Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if prefix != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeEscaper.Replace(strings.ToLower(prefix))+"%")
	}

	ingredients := []entity.Ingredient{}
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindByID はIDで食材を取得します。
func (r *ingredientGorm) FindByID(ctx context.Context, id uint) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// Create は食材を保存します。
func (r *ingredientGorm) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	return translate(r.db.WithContext(ctx).Create(ingredient).Error, usecase.ErrDuplicateIngredient)
}

// CreateBatch はすべての食材を1トランザクションで保存します。1件でも重複すれば何も保存しません。
func (r *ingredientGorm) CreateBatch(ctx context.Context, ingredients []entity.Ingredient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&ingredients, 500).Error
	})
	return translate(err, usecase.ErrDuplicateIngredient)
}

// Delete は食材と、それを使うレシピの材料行を削除します。
func (r *ingredientGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Ingredient{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrIngredientNotFound
		}
		return nil
	})
}
