package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
)

type SweepController struct {
	Sweep  *services.SweepService
	Secret string
}

func NewSweepController(sweep *services.SweepService, secret string) *SweepController {
	return &SweepController{Sweep: sweep, Secret: secret}
}

// GET /cron/check-expiration
//
// Scheduler-triggered. The bearer secret is checked before anything
// touches the store; a bad or missing token can have no side effects.
func (sc *SweepController) Trigger(c *gin.Context) {
	// The whole header, scheme included, must match; a bare secret
	// without "Bearer " is rejected.
	header := c.GetHeader("Authorization")
	if sc.Secret == "" ||
		subtle.ConstantTimeCompare([]byte(header), []byte("Bearer "+sc.Secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := sc.Sweep.RunDailySweep(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
