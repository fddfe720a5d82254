package routes

import (
	"github.com/nishihata/food-saver/controllers"
	"github.com/nishihata/food-saver/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Items        *controllers.ItemController
	Extract      *controllers.ExtractController
	Subscription *controllers.SubscriptionController
	Device       *controllers.DeviceController
	Sweep        *controllers.SweepController
	Realtime     *controllers.RealtimeController
	Dev          *controllers.DevController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public: session bootstrap and the scheduler trigger (the trigger
	// carries its own bearer secret).
	r.POST("/auth/session", ctrl.Auth.CreateSession)
	r.GET("/cron/check-expiration", ctrl.Sweep.Trigger)

	// Session-scoped routes
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/items", ctrl.Items.List)
		api.POST("/items", ctrl.Items.Add)
		api.DELETE("/items/:id", ctrl.Items.Delete)

		api.POST("/extract", ctrl.Extract.FromLabel)

		api.POST("/subscribe", ctrl.Subscription.Subscribe)
		api.POST("/devices", ctrl.Device.Register)
		api.POST("/notifications/toggle", ctrl.Device.ToggleNotifications)

		api.GET("/ws/alerts", ctrl.Realtime.AlertsWS)
		api.POST("/dev/push-test", ctrl.Dev.PushTest)
	}

	return r
}
