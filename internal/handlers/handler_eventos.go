package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

// eventosHandler streams push events to browser clients over SSE. Each
// connected tab mirrors the invalidations other tabs and instances perform.
type eventosHandler struct {
	hub *realtime.Hub
}

func registerEventosRoutes(rg *gin.RouterGroup, hub *realtime.Hub) {
	if hub == nil {
		// No Redis configured; clients fall back to TTL-based freshness.
		return
	}
	h := &eventosHandler{hub: hub}
	rg.GET("/eventos", h.stream)
}

// stream godoc
// @Summary Server-sent event stream of cache invalidation events
// @Description Streams transaction-updated, balance-updated and per-type global balance events until the client disconnects. Events missed while disconnected are not replayed.
// @Tags eventos
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Security BearerAuth
// @Router /eventos [get]
func (h *eventosHandler) stream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events, cancel := h.hub.Subscribe()
	defer cancel()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			payload, err := realtime.Encode(ev)
			if err != nil {
				return true
			}
			c.SSEvent("message", string(payload))
			return true
		}
	})
}
