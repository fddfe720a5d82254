package main

import (
	"log"
	"os"

	"github.com/nishihata/food-saver/config"
	"github.com/nishihata/food-saver/controllers"
	"github.com/nishihata/food-saver/routes"
	"github.com/nishihata/food-saver/services"
	"github.com/nishihata/food-saver/utils"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := utils.NewLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	if err := utils.InitS3(); err != nil {
		logger.Warn("s3 init failed, label archiving disabled", zap.Error(err))
	}

	itemSvc := services.NewItemService(db, logger)
	subSvc := services.NewSubscriptionService(db, logger)
	authSvc := services.NewAuthService(db, logger)
	sender := services.NewWebPushSender()
	hub := services.NewRealtimeHub()

	devicePush, err := services.NewDevicePushService(db, logger)
	if err != nil {
		logger.Warn("device push unavailable", zap.Error(err))
		devicePush = nil
	}

	extractSvc, err := services.NewExtractService()
	if err != nil {
		log.Fatalf("extraction service init failed: %v", err)
	}

	alerts := services.NewAlertBus(db, hub, devicePush, logger)
	sweepSvc := services.NewSweepService(itemSvc, subSvc, sender, alerts, logger)

	r := routes.SetupRouter(routes.Controllers{
		Auth:         controllers.NewAuthController(authSvc),
		Items:        controllers.NewItemController(itemSvc),
		Extract:      controllers.NewExtractController(extractSvc, logger),
		Subscription: controllers.NewSubscriptionController(subSvc),
		Device:       controllers.NewDeviceController(devicePush),
		Sweep:        controllers.NewSweepController(sweepSvc, cfg.CronSecret),
		Realtime:     controllers.NewRealtimeController(hub, cfg.WSAllowedOrigins),
		Dev:          controllers.NewDevController(subSvc, sender),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
