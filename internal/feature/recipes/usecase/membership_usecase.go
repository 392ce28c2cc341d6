package usecase

import (
	"context"
	"errors"

	"foodgram_backend/internal/feature/recipes/domain/entity"
)

// MembershipRepository stores (user, recipe) rows of one kind.
// Add returns ErrMembershipExists for a duplicate pair; Remove returns
// ErrMembershipMissing when no row was deleted.
type MembershipRepository interface {
	Add(ctx context.Context, userID, recipeID uint) error
	Remove(ctx context.Context, userID, recipeID uint) error
}

// RecipeFinder loads a recipe for the membership response.
type RecipeFinder interface {
	FindByID(ctx context.Context, viewerID, id uint) (*entity.Recipe, error)
}

// MembershipUsecase toggles a recipe in a per-user collection such as favorites.
type MembershipUsecase struct {
	rows       MembershipRepository
	recipes    RecipeFinder
	errExists  error
	errMissing error
}

// NewFavoriteUsecase returns a MembershipUsecase over the favorites rows.
func NewFavoriteUsecase(rows MembershipRepository, recipes RecipeFinder) *MembershipUsecase {
	return &MembershipUsecase{rows: rows, recipes: recipes, errExists: ErrAlreadyFavorited, errMissing: ErrNotFavorited}
}

// NewShoppingCartUsecase returns a MembershipUsecase over the shopping cart rows.
func NewShoppingCartUsecase(rows MembershipRepository, recipes RecipeFinder) *MembershipUsecase {
	return &MembershipUsecase{rows: rows, recipes: recipes, errExists: ErrAlreadyInCart, errMissing: ErrNotInCart}
}

// Add puts recipeID into the user's collection and returns the recipe.
func (u *MembershipUsecase) Add(ctx context.Context, userID, recipeID uint) (*entity.Recipe, error) {
	recipe, err := u.recipes.FindByID(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if err := u.rows.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, ErrMembershipExists) {
			return nil, u.errExists
		}
		return nil, err
	}
	return recipe, nil
}

// Remove takes recipeID out of the user's collection.
func (u *MembershipUsecase) Remove(ctx context.Context, userID, recipeID uint) error {
	if _, err := u.recipes.FindByID(ctx, userID, recipeID); err != nil {
		return err
	}
	if err := u.rows.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, ErrMembershipMissing) {
			return u.errMissing
		}
		return err
	}
	return nil
}
