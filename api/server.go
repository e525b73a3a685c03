// Package api exposes the HTTP and websocket surface of the relay.
package api

import (
	"log/slog"

	"chat-relay/broker"
	"chat-relay/services"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type Server struct {
	log      *slog.Logger
	app      *fiber.App
	router   services.IChatRouter
	typing   services.ITypingNotifier
	presence services.IPresenceService
	history  services.IHistoryService
	files    services.IFileService
	broker   *broker.NatsBroker
}

func NewServer(log *slog.Logger, router services.IChatRouter, typing services.ITypingNotifier,
	presence services.IPresenceService, history services.IHistoryService,
	files services.IFileService, b *broker.NatsBroker) *Server {

	s := &Server{
		log:      log,
		router:   router,
		typing:   typing,
		presence: presence,
		history:  history,
		files:    files,
		broker:   b,
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(logger.New())

	group := app.Group("/api")
	group.Post("/chat/login", s.handleLogin)
	group.Get("/users/all", s.handleAllUsers)
	group.Get("/users/online", s.handleOnlineUsers)
	group.Get("/messages", s.handleRecentMessages)
	group.Get("/messages/direct", s.handleDirectMessages)
	group.Post("/files/upload", s.handleUpload)
	group.Get("/files/:id", s.handleDownload)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:userID", websocket.New(s.handleSocket))

	s.app = app
	return s
}

func (s *Server) Listen(address string) error {
	return s.app.Listen(address)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
