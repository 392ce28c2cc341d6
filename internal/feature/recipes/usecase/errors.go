// Package usecase implements recipe publishing, listing, short links,
// favorites, shopping carts and the shopping list export.
package usecase

import "errors"

var (
	// ErrRecipeNotFound is returned when no recipe has the requested ID or short code.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrForbidden is returned when a user other than the author modifies a recipe.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrShortCodeTaken is returned by the repository when the short code lost an insert race.
	ErrShortCodeTaken = errors.New("short code already taken")

	// ErrShortCodeExhausted is returned when no free short code was drawn within the attempt budget.
	ErrShortCodeExhausted = errors.New("no free short code found")

	// ErrMembershipExists is returned by a membership repository for a duplicate (user, recipe) pair.
	ErrMembershipExists = errors.New("membership already exists")

	// ErrMembershipMissing is returned by a membership repository when there is nothing to remove.
	ErrMembershipMissing = errors.New("membership does not exist")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")
)
