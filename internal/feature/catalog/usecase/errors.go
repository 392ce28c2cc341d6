// Package usecase implements read access to tags and ingredients and their staff management.
package usecase

import "errors"

var (
	// ErrTagNotFound is returned when no tag has the requested ID.
	ErrTagNotFound = errors.New("tag not found")

	// ErrIngredientNotFound is returned when no ingredient has the requested ID.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrDuplicateTag is returned when the tag name or slug is already used.
	ErrDuplicateTag = errors.New("a tag with this name or slug already exists")

	// ErrDuplicateIngredient is returned when the ingredient name is already used.
	ErrDuplicateIngredient = errors.New("an ingredient with this name already exists")

	// ErrIngredientsExist is returned by a bulk import that hit an existing name.
	// Nothing from the batch is stored.
	ErrIngredientsExist = errors.New("ingredients already exist")
)
