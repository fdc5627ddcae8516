package controllers

import (
	"net/http"
	"time"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsPingInterval = 25 * time.Second

type RealtimeController struct {
	RT        *services.RealtimeHub
	Dashboard *services.DashboardService
}

func NewRealtimeController(rt *services.RealtimeHub, dash *services.DashboardService) *RealtimeController {
	return &RealtimeController{RT: rt, Dashboard: dash}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DayWS streams "day.updated" messages after every log write of the user.
func (rc *RealtimeController) DayWS(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	rc.RT.Register(cl)

	// initial snapshot so the client does not wait for the first write
	rc.Dashboard.PublishDay(c.Request.Context(), uid, "")

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(wsPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			rc.RT.Unregister(cl)
			return
		}
	}
}
