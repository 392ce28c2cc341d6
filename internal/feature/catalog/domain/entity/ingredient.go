package entity

// Ingredient is a product with the unit it is measured in.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:128;uniqueIndex;not null"`
	MeasurementUnit string `gorm:"size:64;not null"`
}
