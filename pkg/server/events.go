package server

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio-chat/pkg/chat"
)

const (
	eventBuffer       = 32
	heartbeatInterval = 15 * time.Second
)

// streamEvents relays a session's controller events as server-sent events.
// The first event is a snapshot so a reconnecting widget can redraw.
func (s *Server) streamEvents(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}

	events := make(chan chat.Event, eventBuffer)
	unsubscribe := sess.Controller.Subscribe(func(ev chat.Event) {
		select {
		case events <- ev:
		default:
			s.log.Warn("dropping event for slow client", "session", sess.ID.String(), "type", string(ev.Type))
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", sess.Controller.Snapshot())
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev := <-events:
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
