package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/nishihata/food-saver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type RealtimeController struct {
	RT             *services.RealtimeHub
	allowedOrigins []string
	upgrader       websocket.Upgrader
}

// NewRealtimeController builds the websocket endpoint. allowedOrigins is
// the configured origin allowlist; an empty list allows any origin, for
// local development.
func NewRealtimeController(rt *services.RealtimeHub, allowedOrigins []string) *RealtimeController {
	rc := &RealtimeController{RT: rt, allowedOrigins: allowedOrigins}
	rc.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), rc.allowedOrigins)
		},
	}
	return rc
}

func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

// GET /ws/alerts
func (rc *RealtimeController) AlertsWS(c *gin.Context) {
	uid := c.MustGet("userID").(uuid.UUID)

	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.RT.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error, then unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.RT.Unregister(cl)
			return
		}
	}
}
