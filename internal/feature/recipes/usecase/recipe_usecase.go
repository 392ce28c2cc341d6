package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	catalogentity "foodgram_backend/internal/feature/catalog/domain/entity"
	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/platform/media"
	"foodgram_backend/internal/platform/metrics"
	"foodgram_backend/internal/shared/validation"
)

// createAttempts bounds how often Create regenerates the short code after
// losing an insert race.
const createAttempts = 3

// RecipeRepository abstracts the persistence layer for recipes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, viewerID, id uint) (*entity.Recipe, error)
	List(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error)
	ShortCodeExists(ctx context.Context, code string) (bool, error)
	FindIDByShortCode(ctx context.Context, code string) (uint, error)
	MissingTags(ctx context.Context, ids []uint) ([]uint, error)
	MissingIngredients(ctx context.Context, ids []uint) ([]uint, error)
	ShoppingList(ctx context.Context, userID uint) ([]entity.ShoppingListItem, error)
	SearchStats(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error)
}

// CodeGenerator produces a short code not reported as taken.
type CodeGenerator interface {
	Generate(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error)
}

// UsernameFinder resolves the username printed on a shopping list.
type UsernameFinder interface {
	Username(ctx context.Context, userID uint) (string, error)
}

// IngredientAmount is one ingredient line of a recipe write.
type IngredientAmount struct {
	ID     uint
	Amount int
}

// RecipeInput is a recipe write. Nil scalar fields keep their stored value
// on update; on create Name, Text, CookingTime and Image are required.
type RecipeInput struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *media.Image
	TagIDs      []uint
	Ingredients []IngredientAmount
}

// RecipeUsecase publishes and queries recipes.
type RecipeUsecase struct {
	recipes RecipeRepository
	codes   CodeGenerator
	storage media.Storage
	users   UsernameFinder
}

// NewRecipeUsecase creates a new RecipeUsecase.
func NewRecipeUsecase(recipes RecipeRepository, codes CodeGenerator, storage media.Storage, users UsernameFinder) *RecipeUsecase {
	return &RecipeUsecase{recipes: recipes, codes: codes, storage: storage, users: users}
}

// Create validates in, stores the image and inserts the recipe with a fresh short code.
func (u *RecipeUsecase) Create(ctx context.Context, authorID uint, in RecipeInput) (*entity.Recipe, error) {
	verr := validation.New()
	if in.Name == nil || *in.Name == "" {
		verr.Add("name", "This field is required.")
	}
	if in.Text == nil || *in.Text == "" {
		verr.Add("text", "This field is required.")
	}
	if in.CookingTime == nil {
		verr.Add("cooking_time", "This field is required.")
	}
	if in.Image == nil {
		verr.Add("image", "This field is required.")
	}
	if err := u.validateLines(ctx, verr, in); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	key, err := media.Save(ctx, u.storage, media.RecipesDir, in.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to store recipe image: %w", err)
	}

	recipe := &entity.Recipe{
		AuthorID:    authorID,
		Name:        *in.Name,
		Text:        *in.Text,
		CookingTime: *in.CookingTime,
		Image:       key,
	}
	setLines(recipe, in)

	for attempt := 1; ; attempt++ {
		recipe.ShortCode, err = u.codes.Generate(ctx, u.recipes.ShortCodeExists)
		if err != nil {
			break
		}
		err = u.recipes.Create(ctx, recipe)
		if !errors.Is(err, ErrShortCodeTaken) || attempt == createAttempts {
			break
		}
		metrics.ShortCodeCollisions.Inc()
		slog.Warn("short code taken at insert, retrying", "code", recipe.ShortCode, "attempt", attempt)
		recipe.ID = 0
		setLines(recipe, in)
	}
	if err != nil {
		u.removeObject(ctx, key)
		if errors.Is(err, ErrShortCodeExhausted) || errors.Is(err, ErrShortCodeTaken) {
			slog.Error("failed to allocate recipe short code", "author_id", authorID, "error", err)
		}
		return nil, err
	}

	metrics.RecipesCreated.Inc()
	return u.recipes.FindByID(ctx, authorID, recipe.ID)
}

// Update replaces the tags and ingredient lines of a recipe owned by userID
// and overwrites the scalar fields present in in.
func (u *RecipeUsecase) Update(ctx context.Context, userID, recipeID uint, in RecipeInput) (*entity.Recipe, error) {
	recipe, err := u.owned(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	verr := validation.New()
	if in.Name != nil && *in.Name == "" {
		verr.Add("name", "This field may not be blank.")
	}
	if in.Text != nil && *in.Text == "" {
		verr.Add("text", "This field may not be blank.")
	}
	if err := u.validateLines(ctx, verr, in); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.Text != nil {
		recipe.Text = *in.Text
	}
	if in.CookingTime != nil {
		recipe.CookingTime = *in.CookingTime
	}
	oldImage := recipe.Image
	if in.Image != nil {
		key, err := media.Save(ctx, u.storage, media.RecipesDir, in.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to store recipe image: %w", err)
		}
		recipe.Image = key
	}
	setLines(recipe, in)

	if err := u.recipes.Update(ctx, recipe); err != nil {
		if recipe.Image != oldImage {
			u.removeObject(ctx, recipe.Image)
		}
		return nil, err
	}
	if recipe.Image != oldImage {
		u.removeObject(ctx, oldImage)
	}
	return u.recipes.FindByID(ctx, userID, recipeID)
}

// Delete removes a recipe owned by userID together with its image.
func (u *RecipeUsecase) Delete(ctx context.Context, userID, recipeID uint) error {
	recipe, err := u.owned(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if err := u.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}
	u.removeObject(ctx, recipe.Image)
	return nil
}

// Get returns recipe id annotated for viewerID (0 for anonymous callers).
func (u *RecipeUsecase) Get(ctx context.Context, viewerID, id uint) (*entity.Recipe, error) {
	return u.recipes.FindByID(ctx, viewerID, id)
}

// List returns a page of recipes matching filter, oldest first.
func (u *RecipeUsecase) List(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error) {
	return u.recipes.List(ctx, viewerID, filter, limit, offset)
}

// ShortCode returns the short code of recipe id.
func (u *RecipeUsecase) ShortCode(ctx context.Context, id uint) (string, error) {
	recipe, err := u.recipes.FindByID(ctx, 0, id)
	if err != nil {
		return "", err
	}
	return recipe.ShortCode, nil
}

// Resolve maps a short code to its recipe ID.
func (u *RecipeUsecase) Resolve(ctx context.Context, code string) (uint, error) {
	return u.recipes.FindIDByShortCode(ctx, code)
}

// ShoppingList sums the ingredients of every recipe in the user's cart.
func (u *RecipeUsecase) ShoppingList(ctx context.Context, userID uint) (*entity.ShoppingList, error) {
	username, err := u.users.Username(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := u.recipes.ShoppingList(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}
	return &entity.ShoppingList{Username: username, Items: items}, nil
}

// SearchStats finds recipes by name or author username, most favorited first.
func (u *RecipeUsecase) SearchStats(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error) {
	return u.recipes.SearchStats(ctx, query, limit)
}

func (u *RecipeUsecase) owned(ctx context.Context, userID, recipeID uint) (*entity.Recipe, error) {
	recipe, err := u.recipes.FindByID(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// validateLines checks the tag and ingredient lists. Only repository failures are returned;
// rule violations are added to verr.
func (u *RecipeUsecase) validateLines(ctx context.Context, verr *validation.Error, in RecipeInput) error {
	switch {
	case len(in.TagIDs) == 0:
		verr.Add("tags", "At least one tag is required.")
	case hasDuplicates(in.TagIDs):
		verr.Add("tags", "Tags must not repeat.")
	default:
		missing, err := u.recipes.MissingTags(ctx, in.TagIDs)
		if err != nil {
			return fmt.Errorf("failed to look up tags: %w", err)
		}
		for _, id := range missing {
			verr.Addf("tags", "Invalid pk \"%d\" - object does not exist.", id)
		}
	}

	ids := make([]uint, 0, len(in.Ingredients))
	badAmount := false
	for _, line := range in.Ingredients {
		ids = append(ids, line.ID)
		if line.Amount < entity.MinAmount || line.Amount > entity.MaxAmount {
			badAmount = true
		}
	}
	if badAmount {
		verr.Addf("ingredients", "Amount must be between %d and %d.", entity.MinAmount, entity.MaxAmount)
	}
	switch {
	case len(ids) == 0:
		verr.Add("ingredients", "At least one ingredient is required.")
	case hasDuplicates(ids):
		verr.Add("ingredients", "Ingredients must not repeat.")
	default:
		missing, err := u.recipes.MissingIngredients(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to look up ingredients: %w", err)
		}
		for _, id := range missing {
			verr.Addf("ingredients", "Invalid pk \"%d\" - object does not exist.", id)
		}
	}

	if in.CookingTime != nil && (*in.CookingTime < entity.MinCookingTime || *in.CookingTime > entity.MaxCookingTime) {
		verr.Addf("cooking_time", "Cooking time must be between %d and %d.", entity.MinCookingTime, entity.MaxCookingTime)
	}
	if in.Name != nil && len([]rune(*in.Name)) > entity.MaxNameLength {
		verr.Addf("name", "Ensure this field has no more than %d characters.", entity.MaxNameLength)
	}
	return nil
}

func setLines(recipe *entity.Recipe, in RecipeInput) {
	recipe.Tags = make([]catalogentity.Tag, 0, len(in.TagIDs))
	for _, id := range in.TagIDs {
		recipe.Tags = append(recipe.Tags, catalogentity.Tag{ID: id})
	}
	recipe.Ingredients = make([]entity.RecipeIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{IngredientID: line.ID, Amount: line.Amount})
	}
}

func hasDuplicates(ids []uint) bool {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// removeObject deletes a stored image, logging failures.
func (u *RecipeUsecase) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := u.storage.Delete(ctx, key); err != nil {
		slog.Warn("failed to delete recipe image", "key", key, "error", err)
	}
}
