package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chat-relay/api"
	"chat-relay/broker"
	"chat-relay/domain"
	"chat-relay/repositories"
	"chat-relay/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanup always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Stores: sqlite for messages/sessions, badger for the directory
	db, err := repositories.OpenSQLite(config.SQLiteFilepath)
	if err != nil {
		return fmt.Errorf("sqlite opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing sqlite...")
		_ = db.Close()
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = repositories.Migrate(ctx, db); err != nil {
		return err
	}

	directory, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("directory opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing directory store...")
		_ = directory.Close()
	}()

	// 3. Broker
	natsBroker, err := broker.NewNatsBroker(config.NatsURL)
	if err != nil {
		return err
	}
	defer natsBroker.Close()
	log.Info("Connected to NATS", "url", config.NatsURL)

	// 4. Repositories & services
	messageRepository := repositories.NewMessageRepository(db, log)
	sessionRepository := repositories.NewSessionRepository(db, log)
	userRepository := repositories.NewUserRepository(directory)

	if config.SeedDirectory {
		if err = seedDirectory(userRepository); err != nil {
			return fmt.Errorf("directory seeding failed: %w", err)
		}
	}

	typing := services.NewTypingNotifier(log, userRepository, natsBroker)
	router := services.NewChatRouter(log, messageRepository, userRepository, typing, natsBroker)
	presence := services.NewPresenceService(log, userRepository, sessionRepository)
	history := services.NewHistoryService(log, messageRepository, userRepository)
	files := services.NewFileService(log, messageRepository, config.MaxFileSize)

	// 5. HTTP/WS server
	server := api.NewServer(log, router, typing, presence, history, files, natsBroker)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address)
		if err := server.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 6. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	if err = server.Shutdown(); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}

// seedDirectory provisions the well-known sample users on first boot so a
// fresh install has a directory that matches the fallback listing.
func seedDirectory(users repositories.IUserRepository) error {
	existing, err := users.FindAllByStatus(domain.StatusActive)
	if err != nil || len(existing) > 0 {
		return err
	}
	for _, user := range services.SampleUsers() {
		if err := users.Put(user); err != nil {
			return err
		}
	}
	return nil
}
