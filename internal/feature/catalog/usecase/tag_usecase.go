package usecase

import (
	"context"

	"foodgram_backend/internal/feature/catalog/domain/entity"
)

// TagRepository abstracts the persistence layer for tags.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TagRepository interface {
	List(ctx context.Context) ([]entity.Tag, error)
	FindByID(ctx context.Context, id uint) (*entity.Tag, error)
	Create(ctx context.Context, tag *entity.Tag) error
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uint) error
}

// TagUsecase provides business logic for tags.
type TagUsecase struct {
	repo TagRepository
}

// NewTagUsecase creates a new TagUsecase with the given repository.
func NewTagUsecase(r TagRepository) *TagUsecase {
	return &TagUsecase{repo: r}
}

// List returns all tags ordered by name.
func (u *TagUsecase) List(ctx context.Context) ([]entity.Tag, error) {
	return u.repo.List(ctx)
}

// Get returns one tag.
func (u *TagUsecase) Get(ctx context.Context, id uint) (*entity.Tag, error) {
	return u.repo.FindByID(ctx, id)
}

// Create adds a tag.
func (u *TagUsecase) Create(ctx context.Context, name, slug string) (*entity.Tag, error) {
	tag := &entity.Tag{Name: name, Slug: slug}
	if err := u.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Update renames a tag or changes its slug.
func (u *TagUsecase) Update(ctx context.Context, id uint, name, slug string) (*entity.Tag, error) {
	tag, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	tag.Slug = slug
	if err := u.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag and detaches it from every recipe.
func (u *TagUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
