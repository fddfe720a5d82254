package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nishihata/food-saver/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port       string
	JWTSecret  string
	CronSecret string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Web push (VAPID). May be empty at boot; the sender checks at send
	// time so the rest of the API keeps working without them.
	VAPIDEmail      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string

	AWSRegion string
	S3Bucket  string
	SNSFCMArn string

	// Origins allowed to open the alerts websocket. Empty means any,
	// for local development.
	WSAllowedOrigins []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CronSecret:       os.Getenv("CRON_SECRET"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBUser:           getEnv("DB_USER", "foodsaver"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           getEnv("DB_NAME", "foodsaver"),
		DBPort:           getEnv("DB_PORT", "5432"),
		VAPIDEmail:       os.Getenv("VAPID_EMAIL"),
		VAPIDPublicKey:   os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey:  os.Getenv("VAPID_PRIVATE_KEY"),
		AWSRegion:        getEnv("AWS_REGION", "ap-northeast-1"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		SNSFCMArn:        os.Getenv("SNS_FCM_ARN"),
		WSAllowedOrigins: splitList(os.Getenv("WS_ALLOWED_ORIGINS")),
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.PushSubscription{},
		&models.UserDevice{},
		&models.Alert{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}
