package services

import (
	"errors"
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidItem  = errors.New("name and expiration date are required")
)

// ItemService is the record store for food items. Items are immutable once
// created; the only mutation is owner-scoped deletion.
type ItemService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewItemService(db *gorm.DB, log *zap.Logger) *ItemService {
	return &ItemService{db: db, log: log}
}

// ListItems returns all of a user's items ordered by expiration date
// ascending, most urgent first.
func (s *ItemService) ListItems(userID uuid.UUID) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.
		Where("user_id = ?", userID).
		Order("expiration_date asc").
		Find(&items).Error
	return items, err
}

// ListItemsInRange returns every item, across all users, whose expiration
// date falls within [start, end], ordered by expiration date ascending.
func (s *ItemService) ListItemsInRange(start, end time.Time) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.
		Where("expiration_date BETWEEN ? AND ?", truncateToDay(start), truncateToDay(end)).
		Order("expiration_date asc").
		Find(&items).Error
	return items, err
}

// InsertItem stores a new item. The expiration date is truncated to the
// calendar day and the category defaults to "other" when unset or unknown.
func (s *ItemService) InsertItem(item *models.FoodItem) (*models.FoodItem, error) {
	if item.Name == "" || item.ExpirationDate.IsZero() {
		return nil, ErrInvalidItem
	}
	if !models.ValidCategory(item.Category) {
		item.Category = models.CategoryOther
	}
	item.ExpirationDate = truncateToDay(item.ExpirationDate)

	if err := s.db.Create(item).Error; err != nil {
		return nil, err
	}

	s.log.Info("item added",
		zap.String("user_id", item.UserID.String()),
		zap.Uint("item_id", item.ID),
		zap.Time("expiration_date", item.ExpirationDate))
	return item, nil
}

// DeleteItem removes an item owned by userID. Deleting someone else's item
// looks the same as deleting a missing one.
func (s *ItemService) DeleteItem(userID uuid.UUID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.FoodItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
