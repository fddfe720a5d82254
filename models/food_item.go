package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodCategory is the fixed set of categories an item can belong to.
type FoodCategory string

const (
	CategoryVegetable FoodCategory = "vegetable"
	CategoryMeatFish  FoodCategory = "meat_fish"
	CategoryDairy     FoodCategory = "dairy"
	CategorySeasoning FoodCategory = "seasoning"
	CategoryBeverage  FoodCategory = "beverage"
	CategoryOther     FoodCategory = "other"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c FoodCategory) bool {
	switch c {
	case CategoryVegetable, CategoryMeatFish, CategoryDairy,
		CategorySeasoning, CategoryBeverage, CategoryOther:
		return true
	}
	return false
}

// UrgencyTier is derived from the expiration date at read time and never
// stored, so it can't drift from the current date.
type UrgencyTier string

const (
	TierExpired  UrgencyTier = "expired"
	TierDueToday UrgencyTier = "due_today"
	TierDueSoon  UrgencyTier = "due_soon"
	TierSafe     UrgencyTier = "safe"
)

// FoodItem is immutable once created, except for deletion by its owner.
type FoodItem struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name           string       `gorm:"not null" json:"name"`
	ExpirationDate time.Time    `gorm:"type:date;index;not null" json:"-"`
	Category       FoodCategory `gorm:"size:20;default:other" json:"category"`
	Note           string       `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
