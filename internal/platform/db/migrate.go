package db

import (
	"fmt"

	authadapters "foodgram_backend/internal/feature/auth/adapters"
	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	recipeentity "foodgram_backend/internal/feature/recipes/domain/entity"
	userentity "foodgram_backend/internal/feature/users/domain/entity"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&userentity.User{},
		&userentity.Subscription{},
		&catalogentity.Tag{},
		&catalogentity.Ingredient{},
		&recipeentity.Recipe{},
		&recipeentity.RecipeIngredient{},
		&recipeentity.Favorite{},
		&recipeentity.ShoppingCart{},
		&authadapters.SessionModel{},
	}
}

// Migrate creates or updates all tables, indexes and constraints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
