package entity

import (
	"time"

	userentity "foodgram_backend/internal/feature/users/domain/entity"
)

// Membership is a (user, recipe) row. Favorite and ShoppingCart share this shape
// but live in separate tables.
type Membership interface {
	TableName() string
}

// Favorite marks a recipe as favorited by a user.
type Favorite struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint            `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	User      userentity.User `gorm:"constraint:OnDelete:CASCADE"`
	Recipe    Recipe          `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Favorite) TableName() string { return "favorites" }

// NewFavorite returns a favorites row for the pair.
func NewFavorite(userID, recipeID uint) Membership {
	return &Favorite{UserID: userID, RecipeID: recipeID}
}

// ShoppingCart puts a recipe into a user's shopping cart.
type ShoppingCart struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_shopping_cart_user_recipe"`
	RecipeID  uint            `gorm:"not null;index;uniqueIndex:idx_shopping_cart_user_recipe"`
	User      userentity.User `gorm:"constraint:OnDelete:CASCADE"`
	Recipe    Recipe          `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (ShoppingCart) TableName() string { return "shopping_carts" }

// NewShoppingCart returns a shopping cart row for the pair.
func NewShoppingCart(userID, recipeID uint) Membership {
	return &ShoppingCart{UserID: userID, RecipeID: recipeID}
}
