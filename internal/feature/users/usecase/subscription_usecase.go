package usecase

import (
	"context"
	"fmt"

	"foodgram_backend/internal/feature/users/domain/entity"
)

// SubscriptionRepository persists who follows whom.
type SubscriptionRepository interface {
	// Create returns ErrAlreadySubscribed or ErrSelfSubscription on constraint violations.
	Create(ctx context.Context, userID, followingID uint) error
	// Delete returns ErrNotSubscribed when no row was removed.
	Delete(ctx context.Context, userID, followingID uint) error
	ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]entity.Profile, int64, error)
}

// RecipeSummaryRepository reads the recipe previews shown on author cards.
type RecipeSummaryRepository interface {
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]entity.RecipeSummary, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// SubscriptionUsecase manages subscriptions to authors.
type SubscriptionUsecase struct {
	users         UserRepository
	subscriptions SubscriptionRepository
	recipes       RecipeSummaryRepository
}

// NewSubscriptionUsecase creates a new SubscriptionUsecase.
func NewSubscriptionUsecase(users UserRepository, subscriptions SubscriptionRepository,
	recipes RecipeSummaryRepository) *SubscriptionUsecase {
	return &SubscriptionUsecase{users: users, subscriptions: subscriptions, recipes: recipes}
}

// Subscribe makes userID follow authorID and returns the author card.
// recipesLimit caps the recipe preview when positive.
func (u *SubscriptionUsecase) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*entity.Author, error) {
	author, err := u.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, ErrSelfSubscription
	}
	if err := u.subscriptions.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}
	return u.author(ctx, entity.Profile{User: *author, IsSubscribed: true}, recipesLimit)
}

// Unsubscribe removes the subscription of userID to authorID.
func (u *SubscriptionUsecase) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := u.users.FindByID(ctx, authorID); err != nil {
		return err
	}
	return u.subscriptions.Delete(ctx, userID, authorID)
}

// Subscriptions returns a page of the authors userID follows.
func (u *SubscriptionUsecase) Subscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]entity.Author, int64, error) {
	profiles, total, err := u.subscriptions.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	authors := make([]entity.Author, 0, len(profiles))
	for _, p := range profiles {
		a, err := u.author(ctx, p, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, *a)
	}
	return authors, total, nil
}

func (u *SubscriptionUsecase) author(ctx context.Context, p entity.Profile, recipesLimit int) (*entity.Author, error) {
	recipes, err := u.recipes.ListByAuthor(ctx, p.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes of author %d: %w", p.ID, err)
	}
	count, err := u.recipes.CountByAuthor(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes of author %d: %w", p.ID, err)
	}
	return &entity.Author{Profile: p, Recipes: recipes, RecipesCount: count}, nil
}
