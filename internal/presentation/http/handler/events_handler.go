package handler

import (
	"io"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/notify"
	"github.com/gin-gonic/gin"
)

// EventsHandler streams change notifications to clients over SSE.
type EventsHandler struct {
	hub *notify.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles the SSE connection. Each event names the aggregate
// that changed; clients refetch it. A keepalive comment goes out every
// 30 seconds so proxies do not cut the connection.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events, cancel := h.hub.Subscribe()
	defer cancel()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-keepalive.C:
			c.SSEvent("keepalive", nil)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
