// Package entity defines the domain entities of the users feature.
package entity

import (
	"regexp"
	"time"
)

const (
	MaxEmailLength    = 254
	MaxUsernameLength = 150
	MaxNameLength     = 150
)

// UsernamePattern matches letters, digits and the characters . @ + - _.
var UsernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// User is a registered account. Email is the login key.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"size:254;uniqueIndex;not null"`
	Username  string `gorm:"size:150;uniqueIndex;not null"`
	FirstName string `gorm:"size:150;not null"`
	LastName  string `gorm:"size:150;not null"`
	Password  string `gorm:"size:255;not null"`
	// Avatar is a storage key, empty when no avatar is set.
	Avatar    string `gorm:"size:255;not null;default:''"`
	IsStaff   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is a user as seen by a particular viewer.
type Profile struct {
	User
	IsSubscribed bool
}

// Author is a followed user together with a preview of their recipes.
type Author struct {
	Profile
	Recipes      []RecipeSummary
	RecipesCount int64
}
