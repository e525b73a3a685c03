package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"chat-relay/broker"
	"chat-relay/domain"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	routeTimeout   = 5 * time.Second
)

const (
	eventSend       = "send"
	eventTyping     = "typing"
	eventStopTyping = "stopTyping"
)

// wsEvent is an inbound client frame. Type selects the operation; the
// embedded event carries the fields the operation needs.
type wsEvent struct {
	Type string `json:"type"`
	domain.ChatEvent
}

// wsEnvelope wraps every outbound payload with the channel it arrived on,
// so one socket can carry both messages and typing state.
type wsEnvelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// handleSocket bridges one websocket connection to the broker: the user's
// private channels plus the broadcast topic feed the socket, and inbound
// frames feed the router. Connections for unknown users are tolerated; the
// router substitutes a placeholder name.
func (s *Server) handleSocket(c *websocket.Conn) {
	userID := c.Params("userID")
	if userID == "" {
		_ = c.WriteJSON(fiber.Map{"error": "missing userID"})
		_ = c.Close()
		return
	}
	connID := uuid.NewString()[:8]
	log := s.log.With("userId", userID, "connId", connID)

	deliver := make(chan wsEnvelope, 256)
	done := make(chan struct{})

	forward := func(channel string) func([]byte) {
		return func(payload []byte) {
			select {
			case deliver <- wsEnvelope{Channel: channel, Data: payload}:
			default:
				log.Debug("delivery dropped, slow consumer", "channel", channel)
			}
		}
	}

	subs := make([]*nats.Subscription, 0, 4)
	subscribe := func(sub *nats.Subscription, err error) bool {
		if err != nil {
			log.Warn("subscription failed", "error", err)
			return false
		}
		subs = append(subs, sub)
		return true
	}
	ok := subscribe(s.broker.SubscribeBroadcast(broker.ChannelMessages, forward(broker.ChannelMessages))) &&
		subscribe(s.broker.SubscribeBroadcast(broker.ChannelTyping, forward(broker.ChannelTyping))) &&
		subscribe(s.broker.SubscribeUser(userID, broker.ChannelMessages, forward(broker.ChannelMessages))) &&
		subscribe(s.broker.SubscribeUser(userID, broker.ChannelTyping, forward(broker.ChannelTyping)))
	defer func() {
		for _, sub := range subs {
			_ = sub.Unsubscribe()
		}
		_ = c.Close()
	}()
	if !ok {
		return
	}

	log.Info("client connected")
	go s.writePump(c, deliver, done, log)
	s.readPump(c, userID, done, log)
	log.Info("client disconnected")
}

func (s *Server) readPump(c *websocket.Conn, userID string, done chan struct{}, log *slog.Logger) {
	defer close(done)
	c.SetReadLimit(maxMessageSize)
	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var event wsEvent
		if err := c.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if event.SenderID == "" {
			event.SenderID = userID
		}

		switch event.Type {
		case eventSend:
			ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
			result := s.router.Route(ctx, event.ChatEvent)
			cancel()
			if result.Status == domain.RouteDegraded {
				log.Warn("route degraded", "cause", result.Cause)
			}
		case eventTyping:
			s.typing.Notify(event.SenderID, event.RecipientID, true)
		case eventStopTyping:
			s.typing.Notify(event.SenderID, event.RecipientID, false)
		default:
			log.Warn("unknown event type", "type", event.Type)
		}
	}
}

func (s *Server) writePump(c *websocket.Conn, deliver <-chan wsEnvelope, done <-chan struct{}, log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case envelope := <-deliver:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteJSON(envelope); err != nil {
				log.Warn("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
