// Package entity defines tags and ingredients, the reference data recipes are built from.
package entity

import "regexp"

const (
	MaxTagLength             = 32
	MaxIngredientNameLength  = 128
	MaxMeasurementUnitLength = 64
)

// SlugPattern matches ASCII letters, digits, underscores and hyphens.
var SlugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Tag labels recipes, e.g. "breakfast".
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:32;uniqueIndex;not null"`
	Slug string `gorm:"size:32;uniqueIndex;not null"`
}
