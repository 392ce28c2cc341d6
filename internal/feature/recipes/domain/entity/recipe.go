// Package entity defines recipes and the per-user rows that reference them.
package entity

import (
	"time"

	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	userentity "foodgram_backend/internal/feature/users/domain/entity"
)

const (
	MaxNameLength   = 256
	MinCookingTime  = 1
	MaxCookingTime  = 32000
	MinAmount       = 1
	MaxAmount       = 32000
	ShortCodeLength = 3
)

// Recipe is a published recipe. PubDate and ShortCode are set once on creation.
//
// IsFavorited, IsInShoppingCart and AuthorSubscribed are never stored; they are
// filled by annotated queries relative to the requesting user.
type Recipe struct {
	ID          uint                `gorm:"primaryKey"`
	AuthorID    uint                `gorm:"not null;index"`
	Author      userentity.User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string              `gorm:"size:256;not null"`
	Image       string              `gorm:"size:255;not null"`
	Text        string              `gorm:"type:text;not null"`
	CookingTime int                 `gorm:"not null"`
	PubDate     time.Time           `gorm:"autoCreateTime;index;not null"`
	ShortCode   string              `gorm:"size:3;uniqueIndex;not null"`
	Tags        []catalogentity.Tag `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`

	IsFavorited      bool `gorm:"->;-:migration"`
	IsInShoppingCart bool `gorm:"->;-:migration"`
	AuthorSubscribed bool `gorm:"->;-:migration"`
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	ID           uint                     `gorm:"primaryKey"`
	RecipeID     uint                     `gorm:"not null;index"`
	IngredientID uint                     `gorm:"not null;index"`
	Ingredient   catalogentity.Ingredient `gorm:"constraint:OnDelete:CASCADE"`
	Amount       int                      `gorm:"not null"`
}

// RecipeFilter narrows a recipe listing. Nil fields are not applied.
type RecipeFilter struct {
	AuthorID         *uint
	TagSlugs         []string
	IsFavorited      *bool
	IsInShoppingCart *bool
}

// RecipeStat is a recipe row with its favorites count, used by staff search.
type RecipeStat struct {
	ID             uint
	Name           string
	AuthorID       uint
	AuthorUsername string
	FavoritesCount int64
	PubDate        time.Time
}
