package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram_backend/internal/feature/catalog/domain/entity"
)

// IngredientRepository abstracts the persistence layer for ingredients.
type IngredientRepository interface {
	// Search returns ingredients whose name starts with prefix, case-insensitively.
	// An empty prefix matches everything.
	Search(ctx context.Context, prefix string) ([]entity.Ingredient, error)
	FindByID(ctx context.Context, id uint) (*entity.Ingredient, error)
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	// CreateBatch stores all ingredients in one transaction, or none of them.
	CreateBatch(ctx context.Context, ingredients []entity.Ingredient) error
	Delete(ctx context.Context, id uint) error
}

// IngredientUsecase provides business logic for ingredients.
type IngredientUsecase struct {
	repo IngredientRepository
}

// NewIngredientUsecase creates a new IngredientUsecase with the given repository.
func NewIngredientUsecase(r IngredientRepository) *IngredientUsecase {
	return &IngredientUsecase{repo: r}
}

// List returns ingredients ordered by name, filtered by a name prefix when one is given.
func (u *IngredientUsecase) List(ctx context.Context, prefix string) ([]entity.Ingredient, error) {
	return u.repo.Search(ctx, strings.TrimSpace(prefix))
}

// Get returns one ingredient.
func (u *IngredientUsecase) Get(ctx context.Context, id uint) (*entity.Ingredient, error) {
	return u.repo.FindByID(ctx, id)
}

// Create adds an ingredient.
func (u *IngredientUsecase) Create(ctx context.Context, name, unit string) (*entity.Ingredient, error) {
	ingredient := &entity.Ingredient{Name: name, MeasurementUnit: unit}
	if err := u.repo.Create(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an ingredient. Recipe lines that use it are removed with it.
func (u *IngredientUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}

// Import stores a batch of ingredients atomically and returns how many were stored.
// If any name already exists nothing is stored and ErrIngredientsExist is returned.
func (u *IngredientUsecase) Import(ctx context.Context, ingredients []entity.Ingredient) (int, error) {
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" || strings.TrimSpace(ing.MeasurementUnit) == "" {
			return 0, fmt.Errorf("ingredient #%d: name and measurement_unit are required", i+1)
		}
	}
	if len(ingredients) == 0 {
		return 0, nil
	}
	if err := u.repo.CreateBatch(ctx, ingredients); err != nil {
		if errors.Is(err, ErrDuplicateIngredient) {
			return 0, ErrIngredientsExist
		}
		return 0, err
	}
	return len(ingredients), nil
}
