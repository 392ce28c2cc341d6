package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
)

// mockSubscriptionUsecase は SubscriptionUsecase のモック実装です。
type mockSubscriptionUsecase struct {
	SubscribeFunc     func(ctx context.Context, userID, authorID uint, recipesLimit int) (*entity.Author, error)
	UnsubscribeFunc   func(ctx context.Context, userID, authorID uint) error
	SubscriptionsFunc func(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]entity.Author, int64, error)
}

func (m *mockSubscriptionUsecase) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*entity.Author, error) {
	return m.SubscribeFunc(ctx, userID, authorID, recipesLimit)
}

func (m *mockSubscriptionUsecase) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	return m.UnsubscribeFunc(ctx, userID, authorID)
}

func (m *mockSubscriptionUsecase) Subscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]entity.Author, int64, error) {
	return m.SubscriptionsFunc(ctx, userID, limit, offset, recipesLimit)
}

func author(id uint) *entity.Author {
	return &entity.Author{
		Profile: profile(id, "chef", true),
		Recipes: []entity.RecipeSummary{
			{ID: 10, AuthorID: id, Name: "Soup", Image: "recipes/images/s.png", CookingTime: 15},
		},
		RecipesCount: 4,
	}
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		err            error
		expectedStatus int
		expectedLimit  int
	}{
		{name: "success", target: "/api/users/2/subscribe/?recipes_limit=1", expectedStatus: http.StatusCreated, expectedLimit: 1},
		{name: "success: invalid limit ignored", target: "/api/users/2/subscribe/?recipes_limit=abc", expectedStatus: http.StatusCreated},
		{name: "failure: unknown user", target: "/api/users/2/subscribe/", err: usecase.ErrUserNotFound, expectedStatus: http.StatusNotFound},
		{name: "failure: self", target: "/api/users/2/subscribe/", err: usecase.ErrSelfSubscription, expectedStatus: http.StatusBadRequest},
		{name: "failure: duplicate", target: "/api/users/2/subscribe/", err: usecase.ErrAlreadySubscribed, expectedStatus: http.StatusBadRequest},
		{name: "failure: bad id", target: "/api/users/x/subscribe/", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit int
			uc := &mockSubscriptionUsecase{SubscribeFunc: func(_ context.Context, userID, authorID uint, limit int) (*entity.Author, error) {
				gotLimit = limit
				if tt.err != nil {
					return nil, tt.err
				}
				return author(authorID), nil
			}}
			h := NewSubscriptionHandler(uc, staticURLs{})
			r := gin.New()
			r.POST("/api/users/:id/subscribe/", asUser(1), h.Subscribe)

			w := do(r, http.MethodPost, tt.target, "")
			require.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLimit, gotLimit)
			if tt.expectedStatus == http.StatusCreated {
				assert.JSONEq(t, `{
					"email":"chef@example.com","id":2,"username":"chef","first_name":"F","last_name":"L",
					"is_subscribed":true,"avatar":null,
					"recipes":[{"id":10,"name":"Soup","image":"http://example.com/media/recipes/images/s.png","cooking_time":15}],
					"recipes_count":4
				}`, w.Body.String())
			}
		})
	}
}

func TestSubscriptionHandler_Unsubscribe(t *testing.T) {
	t.Parallel()

	uc := &mockSubscriptionUsecase{UnsubscribeFunc: func(_ context.Context, _, authorID uint) error {
		if authorID == 3 {
			return usecase.ErrNotSubscribed
		}
		return nil
	}}
	h := NewSubscriptionHandler(uc, staticURLs{})
	r := gin.New()
	r.DELETE("/api/users/:id/subscribe/", asUser(1), h.Unsubscribe)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/users/2/subscribe/", "").Code)

	w := do(r, http.MethodDelete, "/api/users/3/subscribe/", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"you are not subscribed to this user"}`, w.Body.String())
}

func TestSubscriptionHandler_List(t *testing.T) {
	t.Parallel()

	uc := &mockSubscriptionUsecase{SubscriptionsFunc: func(_ context.Context, userID uint, limit, offset, recipesLimit int) ([]entity.Author, int64, error) {
		assert.Equal(t, uint(1), userID)
		assert.Equal(t, 10, limit)
		assert.Zero(t, offset)
		assert.Equal(t, 2, recipesLimit)
		return []entity.Author{*author(2)}, 1, nil
	}}
	h := NewSubscriptionHandler(uc, staticURLs{})
	r := gin.New()
	r.GET("/api/users/subscriptions/", asUser(1), h.List)

	w := do(r, http.MethodGet, "/api/users/subscriptions/?recipes_limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"recipes_count":4`)
}
