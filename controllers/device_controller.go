package controllers

import (
	"net/http"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeviceController struct {
	Push *services.DevicePushService
}

func NewDeviceController(push *services.DevicePushService) *DeviceController {
	return &DeviceController{Push: push}
}

// POST /devices
func (dc *DeviceController) Register(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := dc.Push.RegisterDevice(uid, req.Platform, req.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// POST /notifications/toggle
func (dc *DeviceController) ToggleNotifications(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := dc.Push.SetEnabled(uid, req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
