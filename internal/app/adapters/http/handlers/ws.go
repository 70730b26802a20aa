package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	domain "github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"time"
)

const (
	wsMaxMessage = 64 << 10
	wsIdle       = 5 * time.Minute
	wsWrite      = 10 * time.Second
)

// PreviewHandler upgrades to a websocket. Every text frame is parsed and
// answered with the resulting field set; nothing is stored.
func (h *Handlers) PreviewHandler(c *gin.Context) {
	strategy, err := domain.ParseStrategy(c.Query("strategy"))
	if err != nil {
		badRequest(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err.Error())
		return
	}
	defer ws.Close()

	log := logger.NewPrefixedLogger(h.log, "ws", "remote", c.ClientIP())
	log.Debug("Preview connected", "strategy", strategy.String())

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()

	ws.SetReadLimit(wsMaxMessage)
	frames := 0
	for {
		_ = ws.SetReadDeadline(time.Now().Add(wsIdle))
		kind, data, err := ws.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				log.Debug("Preview read failed", "error", err.Error())
			}
			break
		}
		if kind != websocket.TextMessage {
			continue
		}

		frames++
		set := h.address.Parse(string(data), strategy)

		_ = ws.SetWriteDeadline(time.Now().Add(wsWrite))
		if err := ws.WriteJSON(set); err != nil {
			log.Warn("Preview write failed", "error", err.Error())
			break
		}
	}

	log.Debug("Preview closed", "frames", frames)
}
