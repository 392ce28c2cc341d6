package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
)

func knownUsers(_ context.Context, id uint) (*entity.User, error) {
	if id == 1 || id == 2 {
		return &entity.User{ID: id, Username: "user"}, nil
	}
	return nil, usecase.ErrUserNotFound
}

// TestSubscriptionUsecase_Subscribe はフォロー登録の各種シナリオを検証します。
func TestSubscriptionUsecase_Subscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userID   uint
		authorID uint
		create   func(ctx context.Context, userID, followingID uint) error
		wantErr  error
	}{
		{name: "success", userID: 1, authorID: 2},
		{name: "failure: unknown author", userID: 1, authorID: 9, wantErr: usecase.ErrUserNotFound},
		{name: "failure: self subscription", userID: 1, authorID: 1, wantErr: usecase.ErrSelfSubscription},
		{
			name: "failure: already subscribed", userID: 1, authorID: 2,
			create:  func(context.Context, uint, uint) error { return usecase.ErrAlreadySubscribed },
			wantErr: usecase.ErrAlreadySubscribed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit int
			recipes := &mockRecipeSummaryRepository{
				ListByAuthorFunc: func(_ context.Context, _ uint, limit int) ([]entity.RecipeSummary, error) {
					gotLimit = limit
					return []entity.RecipeSummary{{ID: 10, Name: "Soup"}}, nil
				},
				CountByAuthorFunc: func(context.Context, uint) (int64, error) { return 5, nil },
			}
			uc := usecase.NewSubscriptionUsecase(
				&mockUserRepository{FindByIDFunc: knownUsers},
				&mockSubscriptionRepository{CreateFunc: tt.create},
				recipes,
			)

			author, err := uc.Subscribe(context.Background(), tt.userID, tt.authorID, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.authorID, author.ID)
			assert.True(t, author.IsSubscribed)
			assert.Equal(t, int64(5), author.RecipesCount)
			assert.Len(t, author.Recipes, 1)
			assert.Equal(t, 3, gotLimit)
		})
	}
}

func TestSubscriptionUsecase_Unsubscribe(t *testing.T) {
	t.Parallel()

	uc := usecase.NewSubscriptionUsecase(
		&mockUserRepository{FindByIDFunc: knownUsers},
		&mockSubscriptionRepository{DeleteFunc: func(_ context.Context, _, followingID uint) error {
			if followingID == 2 {
				return nil
			}
			return usecase.ErrNotSubscribed
		}},
		&mockRecipeSummaryRepository{},
	)
	ctx := context.Background()

	assert.NoError(t, uc.Unsubscribe(ctx, 1, 2))
	assert.ErrorIs(t, uc.Unsubscribe(ctx, 2, 1), usecase.ErrNotSubscribed)
	assert.ErrorIs(t, uc.Unsubscribe(ctx, 1, 9), usecase.ErrUserNotFound)
}

func TestSubscriptionUsecase_Subscriptions(t *testing.T) {
	t.Parallel()

	subs := &mockSubscriptionRepository{
		ListFollowingFunc: func(_ context.Context, userID uint, limit, offset int) ([]entity.Profile, int64, error) {
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return []entity.Profile{
				{User: entity.User{ID: 2}, IsSubscribed: true},
				{User: entity.User{ID: 3}, IsSubscribed: true},
			}, 22, nil
		},
	}
	recipes := &mockRecipeSummaryRepository{
		CountByAuthorFunc: func(_ context.Context, authorID uint) (int64, error) { return int64(authorID) * 10, nil },
	}
	uc := usecase.NewSubscriptionUsecase(&mockUserRepository{}, subs, recipes)

	authors, total, err := uc.Subscriptions(context.Background(), 1, 10, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(22), total)
	require.Len(t, authors, 2)
	assert.Equal(t, int64(20), authors[0].RecipesCount)
	assert.Equal(t, int64(30), authors[1].RecipesCount)
	assert.NotNil(t, authors[0].Recipes)
}
