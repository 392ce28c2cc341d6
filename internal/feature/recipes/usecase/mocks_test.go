package usecase_test

import (
	"context"

	"foodgram_backend/internal/feature/recipes/domain/entity"
	"foodgram_backend/internal/feature/recipes/usecase"
)

// mockRecipeRepository はRecipeRepositoryインターフェースのモック実装です。
type mockRecipeRepository struct {
	CreateFunc             func(ctx context.Context, recipe *entity.Recipe) error
	UpdateFunc             func(ctx context.Context, recipe *entity.Recipe) error
	DeleteFunc             func(ctx context.Context, id uint) error
	FindByIDFunc           func(ctx context.Context, viewerID, id uint) (*entity.Recipe, error)
	ListFunc               func(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error)
	ShortCodeExistsFunc    func(ctx context.Context, code string) (bool, error)
	FindIDByShortCodeFunc  func(ctx context.Context, code string) (uint, error)
	MissingTagsFunc        func(ctx context.Context, ids []uint) ([]uint, error)
	MissingIngredientsFunc func(ctx context.Context, ids []uint) ([]uint, error)
	ShoppingListFunc       func(ctx context.Context, userID uint) ([]entity.ShoppingListItem, error)
	SearchStatsFunc        func(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error)
}

func (m *mockRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, recipe)
	}
	recipe.ID = 1
	return nil
}

func (m *mockRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, recipe)
	}
	return nil
}

func (m *mockRecipeRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRecipeRepository) FindByID(ctx context.Context, viewerID, id uint) (*entity.Recipe, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, viewerID, id)
	}
	return nil, usecase.ErrRecipeNotFound
}

func (m *mockRecipeRepository) List(ctx context.Context, viewerID uint, filter entity.RecipeFilter, limit, offset int) ([]entity.Recipe, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewerID, filter, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRecipeRepository) ShortCodeExists(ctx context.Context, code string) (bool, error) {
	if m.ShortCodeExistsFunc != nil {
		return m.ShortCodeExistsFunc(ctx, code)
	}
	return false, nil
}

func (m *mockRecipeRepository) FindIDByShortCode(ctx context.Context, code string) (uint, error) {
	if m.FindIDByShortCodeFunc != nil {
		return m.FindIDByShortCodeFunc(ctx, code)
	}
	return 0, usecase.ErrRecipeNotFound
}

func (m *mockRecipeRepository) MissingTags(ctx context.Context, ids []uint) ([]uint, error) {
	if m.MissingTagsFunc != nil {
		return m.MissingTagsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockRecipeRepository) MissingIngredients(ctx context.Context, ids []uint) ([]uint, error) {
	if m.MissingIngredientsFunc != nil {
		return m.MissingIngredientsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockRecipeRepository) ShoppingList(ctx context.Context, userID uint) ([]entity.ShoppingListItem, error) {
	if m.ShoppingListFunc != nil {
		return m.ShoppingListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRecipeRepository) SearchStats(ctx context.Context, query string, limit int) ([]entity.RecipeStat, error) {
	if m.SearchStatsFunc != nil {
		return m.SearchStatsFunc(ctx, query, limit)
	}
	return nil, nil
}

// mockCodeGenerator はCodeGeneratorのモック実装です。codesを順に返します。
type mockCodeGenerator struct {
	codes []string
	calls int
}

func (m *mockCodeGenerator) Generate(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error) {
	code := m.codes[m.calls%len(m.codes)]
	m.calls++
	return code, nil
}

// mockStorage はmedia.Storageのモック実装です。
type mockStorage struct {
	put     []string
	deleted []string
	PutFunc func(ctx context.Context, key string, data []byte, contentType string) error
}

func (m *mockStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	m.put = append(m.put, key)
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStorage) URL(key string) string { return "/media/" + key }

// mockUsernameFinder はUsernameFinderのモック実装です。
type mockUsernameFinder struct {
	UsernameFunc func(ctx context.Context, userID uint) (string, error)
}

func (m *mockUsernameFinder) Username(ctx context.Context, userID uint) (string, error) {
	if m.UsernameFunc != nil {
		return m.UsernameFunc(ctx, userID)
	}
	return "cook", nil
}

// mockMembershipRepository はMembershipRepositoryのモック実装です。
type mockMembershipRepository struct {
	AddFunc    func(ctx context.Context, userID, recipeID uint) error
	RemoveFunc func(ctx context.Context, userID, recipeID uint) error
}

func (m *mockMembershipRepository) Add(ctx context.Context, userID, recipeID uint) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, recipeID)
	}
	return nil
}

func (m *mockMembershipRepository) Remove(ctx context.Context, userID, recipeID uint) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, recipeID)
	}
	return nil
}
