package controllers

import (
	"net/http"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DevController struct {
	Subs   *services.SubscriptionService
	Sender services.PushSender
}

func NewDevController(subs *services.SubscriptionService, sender services.PushSender) *DevController {
	return &DevController{Subs: subs, Sender: sender}
}

type pushTestReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// POST /dev/push-test
func (d *DevController) PushTest(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var req pushTestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == "" {
		req.Title = "Test notice"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}

	sub, err := d.Subs.GetSubscription(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no subscription on file"})
		return
	}

	if err := d.Sender.Send(sub, services.PushPayload{Title: req.Title, Body: req.Body, URL: "/"}); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
