package entity

import "time"

// Subscription means UserID follows FollowingID.
type Subscription struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_subscription_user_following"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_subscription_user_following;check:chk_subscription_not_self,user_id <> following_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

// RecipeSummary is the condensed recipe shape shown on author cards.
type RecipeSummary struct {
	ID          uint
	AuthorID    uint
	Name        string
	Image       string
	CookingTime int
}

// TableName maps RecipeSummary onto the recipes table.
func (RecipeSummary) TableName() string {
	return "recipes"
}
