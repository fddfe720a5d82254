package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriptionController struct {
	Subs *services.SubscriptionService
}

func NewSubscriptionController(subs *services.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{Subs: subs}
}

// POST /subscribe
//
// The body is the browser's PushSubscription JSON, stored opaquely;
// enabling notifications twice replaces the previous row.
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription"})
		return
	}

	if err := sc.Subs.UpsertSubscription(uid, string(payload)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
