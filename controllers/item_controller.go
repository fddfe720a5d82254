package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/nishihata/food-saver/models"
	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemController struct {
	Items *services.ItemService
}

func NewItemController(items *services.ItemService) *ItemController {
	return &ItemController{Items: items}
}

type addItemInput struct {
	Name           string              `json:"name" binding:"required"`
	ExpirationDate string              `json:"expiration_date" binding:"required"`
	Category       models.FoodCategory `json:"category"`
	Note           string              `json:"note"`
}

// itemResponse attaches the derived urgency tier and a date-only rendering
// of the expiration to the stored item.
type itemResponse struct {
	models.FoodItem
	ExpirationDate string             `json:"expiration_date"`
	Status         models.UrgencyTier `json:"status"`
}

func toItemResponse(item models.FoodItem, today time.Time) itemResponse {
	return itemResponse{
		FoodItem:       item,
		ExpirationDate: item.ExpirationDate.Format(time.DateOnly),
		Status:         services.ClassifyUrgency(today, item.ExpirationDate),
	}
}

// GET /items
func (ic *ItemController) List(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	items, err := ic.Items.ListItems(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	today := time.Now()
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toItemResponse(item, today))
	}
	c.JSON(http.StatusOK, out)
}

// POST /items
func (ic *ItemController) Add(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var input addItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiration, err := time.Parse(time.DateOnly, input.ExpirationDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiration_date must be YYYY-MM-DD"})
		return
	}

	item := &models.FoodItem{
		UserID:         uid,
		Name:           input.Name,
		ExpirationDate: expiration,
		Category:       input.Category,
		Note:           input.Note,
	}

	stored, err := ic.Items.InsertItem(item)
	if err != nil {
		if errors.Is(err, services.ErrInvalidItem) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toItemResponse(*stored, time.Now()))
}

// DELETE /items/:id
func (ic *ItemController) Delete(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := ic.Items.DeleteItem(uid, uint(id)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
