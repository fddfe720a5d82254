package controllers

import (
	"net/http"

	"github.com/nishihata/food-saver/services"
	"github.com/nishihata/food-saver/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExtractController struct {
	Extract *services.ExtractService
	Log     *zap.Logger
}

func NewExtractController(extract *services.ExtractService, log *zap.Logger) *ExtractController {
	return &ExtractController{Extract: extract, Log: log}
}

type extractInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /extract  { "image_base64": "data:image/jpeg;base64,..." }
//
// Extraction is best-effort pre-fill; any failure comes back as one
// retryable message and never blocks manual entry.
func (ec *ExtractController) FromLabel(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	var input extractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	contentType, image, err := utils.DecodeDataURI(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
		return
	}

	// Archive the scan first; losing the archive is not a reason to fail
	// the extraction.
	if _, err := utils.UploadLabelImage(c.Request.Context(), uid.String(), contentType, image); err != nil {
		ec.Log.Warn("label archive failed", zap.Error(err))
	}

	result, err := ec.Extract.Extract(c.Request.Context(), image)
	if err != nil {
		ec.Log.Error("extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, result)
}
