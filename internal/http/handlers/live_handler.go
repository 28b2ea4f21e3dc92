package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/hotelops/backend/internal/authz"
	"github.com/hotelops/backend/internal/events"
	"github.com/hotelops/backend/internal/metrics"
	"github.com/hotelops/backend/internal/rbac"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// liveRequired is what a client needs to watch the live reservation feed.
var liveRequired = rbac.Required{rbac.ResourceReservations: {rbac.ActionRead}}

// LiveHandler streams hub events to dashboard clients over SSE or a
// websocket. Both transports authenticate inside the handler because
// EventSource cannot set an Authorization header; the token rides in the
// query string instead.
type LiveHandler struct {
	hub       *events.Hub
	guard     *authz.Guard
	keepAlive time.Duration
	log       *zap.Logger
}

func NewLiveHandler(hub *events.Hub, guard *authz.Guard, keepAlive time.Duration, log *zap.Logger) *LiveHandler {
	if keepAlive <= 0 {
		keepAlive = 25 * time.Second
	}
	return &LiveHandler{hub: hub, guard: guard, keepAlive: keepAlive, log: log}
}

func (h *LiveHandler) token(c *fiber.Ctx) string {
	if t := c.Query("token"); t != "" {
		return t
	}
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func lastSeen(c *fiber.Ctx) uint64 {
	raw := c.Get("Last-Event-ID")
	if raw == "" {
		raw = c.Query("last_event_id")
	}
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// StreamSSE serves the text/event-stream feed. Each hub event becomes one
// SSE message whose id is the hub sequence number, so a reconnecting client
// reports how far it got via Last-Event-ID.
func (h *LiveHandler) StreamSSE(c *fiber.Ctx) error {
	authCtx, err := h.guard.Authorize(c.Context(), h.token(c), liveRequired)
	if err != nil {
		return respondError(c, err)
	}

	sub := h.hub.Subscribe(lastSeen(c))
	metrics.LiveSubscribers.Inc()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	log := h.log.With(
		zap.String("user_id", authCtx.UserID.String()),
		zap.String("hotel_id", authCtx.HotelID.String()),
	)
	log.Info("sse subscriber connected", zap.Uint64("last_seen", sub.LastSeen))

	keepAlive := h.keepAlive
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.hub.Unsubscribe(sub)
			metrics.LiveSubscribers.Dec()
			log.Info("sse subscriber disconnected")
		}()

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case event, ok := <-sub.C:
				if !ok {
					// Dropped by the hub for falling behind.
					return
				}
				if err := writeSSE(w, event); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := fmt.Fprintf(w, "event: %s\ndata: {}\n\n", events.EventKeepAlive); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeSSE(w *bufio.Writer, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.Seq, event.Type, data); err != nil {
		return err
	}
	return w.Flush()
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// HandleWS serves the same feed over a websocket for clients that prefer it.
func (h *LiveHandler) HandleWS(conn *websocket.Conn) {
	token := conn.Query("token")
	authCtx, err := h.guard.Authorize(context.Background(), token, liveRequired)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
		conn.Close()
		return
	}

	var seen uint64
	if raw := conn.Query("last_event_id"); raw != "" {
		seen, _ = strconv.ParseUint(raw, 10, 64)
	}

	sub := h.hub.Subscribe(seen)
	metrics.LiveSubscribers.Inc()
	h.log.Info("ws subscriber connected",
		zap.String("user_id", authCtx.UserID.String()),
		zap.String("hotel_id", authCtx.HotelID.String()),
	)

	done := make(chan struct{})

	// Read loop: we never expect client messages, but reading is how we
	// notice the peer going away.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.keepAlive)
	defer func() {
		ticker.Stop()
		h.hub.Unsubscribe(sub)
		metrics.LiveSubscribers.Dec()
		conn.Close()
		h.log.Info("ws subscriber disconnected")
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
