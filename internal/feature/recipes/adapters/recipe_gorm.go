package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/usecase"
	"foodgram_backend/internal/platform/db"
)

// 閲覧ユーザーごとのフラグを相関サブクエリで計算する列です。各列はユーザーIDを1つ受け取ります。
const (
	isFavoritedColumn      = "(SELECT COUNT(*) FROM favorites f WHERE f.recipe_id = recipes.id AND f.user_id = ?) > 0 AS is_favorited"
	isInShoppingCartColumn = "(SELECT COUNT(*) FROM shopping_carts sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?) > 0 AS is_in_shopping_cart"
	authorSubscribedColumn = "(SELECT COUNT(*) FROM subscriptions s WHERE s.following_id = recipes.author_id AND s.user_id = ?) > 0 AS author_subscribed"
)

// recipeTag はrecipe_tags中間テーブルの1行です。
type recipeTag struct {
	RecipeID uint
	TagID    uint
}

func (recipeTag) TableName() string { return "recipe_tags" }

// recipeGorm はRecipeRepositoryインターフェースのGORM実装です。
type recipeGorm struct {
	db *gorm.DB
}

var _ usecase.RecipeRepository = (*recipeGorm)(nil)

// NewRecipeRepository はrecipeGormの新しいインスタンスを生成します。
func NewRecipeRepository(db *gorm.DB) *recipeGorm {
	return &recipeGorm{db: db}
}

// Create はレシピ本体・タグ・材料行を1つのトランザクションで保存します。
// 短縮コードの一意制約違反はErrShortCodeTakenに変換します。
func (r *recipeGorm) Create(ctx context.Context, recipe *entity.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Author", "Tags.*").Create(recipe).Error
	})
	if err != nil {
		recipe.ID = 0
		if db.IsUniqueViolation(err) {
			return usecase.ErrShortCodeTaken
		}
		return err
	}
	return nil
}

// Update はスカラー列を更新し、材料行を削除して再挿入し、タグを丸ごと置き換えます。
func (r *recipeGorm) Update(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Recipe{ID: recipe.ID}).Updates(map[string]any{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"image":        recipe.Image,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entity.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = 0
			recipe.Ingredients[i].RecipeID = recipe.ID
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Omit(clause.Associations).Create(&recipe.Ingredients).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&recipeTag{}).Error; err != nil {
			return err
		}
		links := make([]recipeTag, 0, len(recipe.Tags))
		for _, tag := range recipe.Tags {
			links = append(links, recipeTag{RecipeID: recipe.ID, TagID: tag.ID})
		}
		if len(links) > 0 {
			return tx.Create(&links).Error
		}
		return nil
	})
}

// Delete はレシピを削除します。材料行・お気に入り・買い物かごは外部キーのCASCADEで削除されます。
func (r *recipeGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&recipeTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrRecipeNotFound
		}
		return nil
	})
}

// FindByID はviewerIDから見たフラグ付きでレシピを取得します。
func (r *recipeGorm) FindByID(ctx context.Context, viewerID, id uint) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.annotated(r.db.WithContext(ctx).Model(&entity.Recipe{}), viewerID).
		Where("recipes.id = ?", id).
		Take(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List はフィルタに一致するレシピの1ページを公開日時・ID順に返します。
func (r *recipeGorm) List(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error) {
	filtered := r.filtered(r.db.WithContext(ctx).Model(&entity.Recipe{}), viewerID, filter)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	recipes := []entity.Recipe{}
	if err := r.annotated(filtered.Session(&gorm.Session{}), viewerID).
		Order("recipes.pub_date ASC, recipes.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeGorm) filtered(q *gorm.DB, viewerID uint, filter entity.RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN ?)", filter.TagSlugs)
	}
	if filter.IsFavorited != nil {
		q = memberOf(q, "favorites", viewerID, *filter.IsFavorited)
	}
	if filter.IsInShoppingCart != nil {
		q = memberOf(q, "shopping_carts", viewerID, *filter.IsInShoppingCart)
	}
	return q
}

// memberOf はtableにviewerIDの行がある（want=false ならない）レシピに絞り込みます。
// 匿名ユーザー（ID 0）の行は存在しないため、want=true では常に空になります。
func memberOf(q *gorm.DB, table string, viewerID uint, want bool) *gorm.DB {
	op := "IN"
	if !want {
		op = "NOT IN"
	}
	return q.Where("recipes.id "+op+" (SELECT recipe_id FROM "+table+" WHERE user_id = ?)", viewerID)
}

func (r *recipeGorm) annotated(q *gorm.DB, viewerID uint) *gorm.DB {
	return q.
		Select("recipes.*, "+isFavoritedColumn+", "+isInShoppingCartColumn+", "+authorSubscribedColumn, viewerID, viewerID, viewerID).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient")
}

// ShortCodeExists は短縮コードが使用済みかどうかを返します。
func (r *recipeGorm) ShortCodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Recipe{}).Where("short_code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindIDByShortCode は短縮コードに対応するレシピIDを返します。
func (r *recipeGorm) FindIDByShortCode(ctx context.Context, code string) (uint, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).Select("id").Where("short_code = ?", code).Take(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, usecase.ErrRecipeNotFound
		}
		return 0, err
	}
	return recipe.ID, nil
}

// MissingTags はidsのうち存在しないタグIDを入力順で返します。
func (r *recipeGorm) MissingTags(ctx context.Context, ids []uint) ([]uint, error) {
	return r.missing(ctx, &catalogentity.Tag{}, ids)
}

// MissingIngredients はidsのうち存在しない材料IDを入力順で返します。
func (r *recipeGorm) MissingIngredients(ctx context.Context, ids []uint) ([]uint, error) {
	return r.missing(ctx, &catalogentity.Ingredient{}, ids)
}

func (r *recipeGorm) missing(ctx context.Context, model any, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	exists := make(map[uint]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := exists[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ShoppingList は買い物かご内の全レシピの材料を（名前, 単位）ごとに合計し、名前順で返します。
func (r *recipeGorm) ShoppingList(ctx context.Context, userID uint) ([]entity.ShoppingListItem, error) {
	items := []entity.ShoppingListItem{}
	if err := r.db.WithContext(ctx).
		Table("shopping_carts sc").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, SUM(ri.amount) AS total").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("sc.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("i.name ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SearchStats はレシピ名または作者のユーザー名にqueryを含むレシピを、お気に入り数の多い順に返します。
func (r *recipeGorm) SearchStats(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	stats := []entity.RecipeStat{}
	if err := r.db.WithContext(ctx).
		Table("recipes").
		Select("recipes.id, recipes.name, recipes.author_id, users.username AS author_username, recipes.pub_date, " +
			"(SELECT COUNT(*) FROM favorites f WHERE f.recipe_id = recipes.id) AS favorites_count").
		Joins("JOIN users ON users.id = recipes.author_id").
		Where("LOWER(recipes.name) LIKE ? OR LOWER(users.username) LIKE ?", pattern, pattern).
		Order("favorites_count DESC, recipes.id ASC").
		Limit(limit).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
