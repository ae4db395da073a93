package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"astrolabe/internal/events"
)

// UpdatesHandler streams bus events (content syncs, picture refreshes) to
// websocket clients. Slow clients miss events rather than backing up the
// publishers.
type UpdatesHandler struct {
	Bus    *events.Bus
	Logger *zap.Logger
}

func (h *UpdatesHandler) Register(r *gin.Engine) {
	r.GET("/ws/updates", h.stream)
}

// @Summary Stream update events over websocket
// @Tags updates
// @Router /ws/updates [get]
func (h *UpdatesHandler) stream(c *gin.Context) {
	if h.Bus == nil {
		c.AbortWithStatus(503)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx := c.Request.Context()
	sub, cancelSub := h.Bus.Subscribe("", 32)
	defer cancelSub()

	// Reads are discarded; the stream is one-way but a read loop is needed
	// to observe client close.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, evt)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
