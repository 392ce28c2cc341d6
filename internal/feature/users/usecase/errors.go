// Package usecase implements registration, profiles, avatars and subscriptions.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested ID or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when the email or username was taken concurrently.
	ErrDuplicateUser = errors.New("a user with that email or username already exists")

	// ErrAlreadySubscribed is returned when the subscription already exists.
	ErrAlreadySubscribed = errors.New("you are already subscribed to this user")

	// ErrSelfSubscription is returned when a user tries to follow themselves.
	ErrSelfSubscription = errors.New("you cannot subscribe to yourself")

	// ErrNotSubscribed is returned when removing a subscription that does not exist.
	ErrNotSubscribed = errors.New("you are not subscribed to this user")
)
