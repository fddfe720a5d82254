package services

import (
	"context"
	"os"
	"time"

	"github.com/nishihata/food-saver/models"
	"github.com/nishihata/food-saver/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// ExtractResult is the best-effort field guess read off a label photo.
// Date and category may be absent; RawText always carries whatever the OCR
// saw, so the client can show it even when parsing found nothing.
type ExtractResult struct {
	RawText        string              `json:"text"`
	ExpirationDate string              `json:"expirationDate,omitempty"`
	ProductName    string              `json:"productName,omitempty"`
	Category       models.FoodCategory `json:"category,omitempty"`
}

type ExtractService struct {
	client *rekognition.Client
}

func NewExtractService() (*ExtractService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &ExtractService{client: rekognition.NewFromConfig(cfg)}, nil
}

// Extract runs OCR on raw image bytes and parses the detected lines into
// label fields. Multiple dates on a label resolve to the latest one.
func (e *ExtractService) Extract(ctx context.Context, image []byte) (*ExtractResult, error) {
	out, err := e.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: image},
	})
	if err != nil {
		return nil, err
	}

	rawText := ""
	for _, t := range out.TextDetections {
		if t.Type != types.TextTypesLine {
			continue
		}
		if rawText != "" {
			rawText += "\n"
		}
		rawText += aws.ToString(t.DetectedText)
	}

	fields := utils.ParseLabel(rawText)

	res := &ExtractResult{
		RawText:     rawText,
		ProductName: fields.Name,
		Category:    fields.Category,
	}
	if fields.HasDate {
		res.ExpirationDate = fields.Date.Format(time.DateOnly)
	}
	return res, nil
}
