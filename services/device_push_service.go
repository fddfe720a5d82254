package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/nishihata/food-saver/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DevicePushService is the secondary transport: expiry notices fan out to a
// user's registered mobile devices through SNS platform endpoints, beside
// the web push the sweep reports on.
type DevicePushService struct {
	db             *gorm.DB
	sns            *awssns.Client
	fcmPlatformArn string
	log            *zap.Logger
}

func NewDevicePushService(db *gorm.DB, log *zap.Logger) (*DevicePushService, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-northeast-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &DevicePushService{
		db:             db,
		sns:            awssns.NewFromConfig(cfg),
		fcmPlatformArn: os.Getenv("SNS_FCM_ARN"),
		log:            log,
	}, nil
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

func (p *DevicePushService) tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *DevicePushService) platformArn(platform string) (string, error) {
	switch strings.ToLower(platform) {
	case "android", "ios":
		if p.fcmPlatformArn == "" {
			return "", errors.New("SNS_FCM_ARN not set")
		}
		return p.fcmPlatformArn, nil
	default:
		return "", errors.New("unknown platform")
	}
}

// RegisterDevice creates an SNS endpoint for the token and upserts the
// device row keyed by (user, token hash).
func (p *DevicePushService) RegisterDevice(userID uuid.UUID, platform, token string) (*models.UserDevice, error) {
	if p == nil {
		return nil, errors.New("device push not configured")
	}
	appArn, err := p.platformArn(platform)
	if err != nil {
		return nil, err
	}

	out, err := p.sns.CreatePlatformEndpoint(context.TODO(), &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(appArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    strings.ToLower(platform),
		TokenHash:   p.tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
		Enabled:     true,
		UpdatedAt:   time.Now(),
	}

	var existing models.UserDevice
	if err := p.db.Where("user_id = ? AND token_hash = ?", userID, dev.TokenHash).First(&existing).Error; err == nil {
		existing.EndpointARN = dev.EndpointARN
		existing.Platform = dev.Platform
		existing.UpdatedAt = time.Now()
		if err := p.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if err := p.db.Create(dev).Error; err != nil {
		return nil, err
	}
	return dev, nil
}

// SetEnabled flips push delivery for all of a user's devices.
func (p *DevicePushService) SetEnabled(userID uuid.UUID, enabled bool) error {
	if p == nil {
		return errors.New("device push not configured")
	}
	return p.db.Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}

// PushToUser publishes to every enabled endpoint of the user. Best-effort:
// individual publish failures are logged and swallowed.
func (p *DevicePushService) PushToUser(userID uuid.UUID, payload PushPayload) {
	if p == nil {
		return
	}
	var endpoints []models.UserDevice
	if err := p.db.Where("user_id = ? AND enabled = ?", userID, true).Find(&endpoints).Error; err != nil {
		p.log.Warn("device lookup failed", zap.Error(err))
		return
	}
	if len(endpoints) == 0 {
		return
	}

	msg := map[string]any{
		"default": payload.Body,
		"GCM": map[string]any{
			"notification": map[string]string{
				"title": payload.Title,
				"body":  payload.Body,
			},
			"data": map[string]string{"url": payload.URL},
		},
	}

	raw, _ := json.Marshal(msg)
	for _, d := range endpoints {
		_, err := p.sns.Publish(context.TODO(), &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.Warn("sns publish failed",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}
}
