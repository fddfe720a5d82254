package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

// InitS3 must be called once at startup.
func InitS3() error {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// DecodeDataURI splits a "data:<mime>;base64,<data>" payload into its
// content type and raw bytes.
func DecodeDataURI(dataURI string) (contentType string, data []byte, err error) {
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", nil, fmt.Errorf("invalid data URI")
	}

	meta := strings.TrimPrefix(parts[0], "data:")
	contentType = strings.SplitN(meta, ";", 2)[0]

	data, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return contentType, data, nil
}

// UploadLabelImage archives a scanned label photo to S3 and returns its key.
func UploadLabelImage(ctx context.Context, userID string, contentType string, data []byte) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("s3 client not initialized")
	}

	ext := ".jpg"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "jpeg" {
		ext = "." + parts[1]
	}

	key := fmt.Sprintf("label-scans/%s/%d%s", userID, time.Now().UnixNano(), ext)

	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}
