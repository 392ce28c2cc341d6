package usecase_test

import (
	"context"

	"foodgram_backend/internal/feature/users/domain/entity"
	"foodgram_backend/internal/feature/users/usecase"
)

// mockUserRepository はUserRepositoryインターフェースのモック実装です。
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	TakenFunc          func(ctx context.Context, email, username string) (bool, bool, error)
	ListFunc           func(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error)
	ProfileFunc        func(ctx context.Context, viewerID, id uint) (*entity.Profile, error)
	UpdatePasswordFunc func(ctx context.Context, id uint, hash string) error
	UpdateAvatarFunc   func(ctx context.Context, id uint, key string) error
	SearchFunc         func(ctx context.Context, query string, limit int) ([]entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserRepository) Taken(ctx context.Context, email, username string) (bool, bool, error) {
	if m.TakenFunc != nil {
		return m.TakenFunc(ctx, email, username)
	}
	return false, false, nil
}

func (m *mockUserRepository) List(ctx context.Context, viewerID uint, limit, offset int) ([]entity.Profile, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, viewerID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) Profile(ctx context.Context, viewerID, id uint) (*entity.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, viewerID, id)
	}
	return nil, usecase.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hash)
	}
	return nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id uint, key string) error {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, id, key)
	}
	return nil
}

func (m *mockUserRepository) Search(ctx context.Context, query string, limit int) ([]entity.User, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

// mockSessionRevoker はSessionRevokerのモック実装です。
type mockSessionRevoker struct {
	RevokeAllSessionsFunc func(ctx context.Context, userID uint) error
}

func (m *mockSessionRevoker) RevokeAllSessions(ctx context.Context, userID uint) error {
	if m.RevokeAllSessionsFunc != nil {
		return m.RevokeAllSessionsFunc(ctx, userID)
	}
	return nil
}

// mockStorage はmedia.Storageのモック実装です。保存されたキーを記録します。
type mockStorage struct {
	PutFunc    func(ctx context.Context, key string, data []byte, contentType string) error
	DeleteFunc func(ctx context.Context, key string) error
	put        []string
	deleted    []string
}

func (m *mockStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.put = append(m.put, key)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, data, contentType)
	}
	return nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *mockStorage) URL(key string) string {
	return "/media/" + key
}

// mockSubscriptionRepository はSubscriptionRepositoryのモック実装です。
type mockSubscriptionRepository struct {
	CreateFunc        func(ctx context.Context, userID, followingID uint) error
	DeleteFunc        func(ctx context.Context, userID, followingID uint) error
	ListFollowingFunc func(ctx context.Context, userID uint, limit, offset int) ([]entity.Profile, int64, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, userID, followingID uint) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, followingID)
	}
	return nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, userID, followingID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, followingID)
	}
	return nil
}

func (m *mockSubscriptionRepository) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]entity.Profile, int64, error) {
	if m.ListFollowingFunc != nil {
		return m.ListFollowingFunc(ctx, userID, limit, offset)
	}
	return nil, 0, nil
}

// mockRecipeSummaryRepository はRecipeSummaryRepositoryのモック実装です。
type mockRecipeSummaryRepository struct {
	ListByAuthorFunc  func(ctx context.Context, authorID uint, limit int) ([]entity.RecipeSummary, error)
	CountByAuthorFunc func(ctx context.Context, authorID uint) (int64, error)
}

func (m *mockRecipeSummaryRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]entity.RecipeSummary, error) {
	if m.ListByAuthorFunc != nil {
		return m.ListByAuthorFunc(ctx, authorID, limit)
	}
	return []entity.RecipeSummary{}, nil
}

func (m *mockRecipeSummaryRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	if m.CountByAuthorFunc != nil {
		return m.CountByAuthorFunc(ctx, authorID)
	}
	return 0, nil
}
