package services

import (
	"context"
	"log/slog"

	"chat-relay/domain"
	"chat-relay/repositories"

	"github.com/samber/lo"
)

// DefaultHistoryLimit bounds history queries when the client gives none.
const DefaultHistoryLimit = 50

type IHistoryService interface {
	Recent(ctx context.Context, limit int) []domain.OutboundMessage
	Between(ctx context.Context, userA, userB string, limit int) []domain.OutboundMessage
}

// HistoryService serves message history in the same enriched representation
// the broker delivers, so clients render live and replayed messages alike.
type HistoryService struct {
	log      *slog.Logger
	messages repositories.IMessageRepository
	users    repositories.IUserRepository
}

func NewHistoryService(log *slog.Logger, messages repositories.IMessageRepository,
	users repositories.IUserRepository) *HistoryService {
	return &HistoryService{log: log, messages: messages, users: users}
}

// Recent returns broadcast history, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) []domain.OutboundMessage {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	messages, err := s.messages.FindRecentBroadcast(ctx, limit)
	if err != nil {
		s.log.Warn("recent history lookup failed", "error", err)
		return []domain.OutboundMessage{}
	}
	return s.enrich(messages)
}

// Between returns the direct conversation between two users, newest first.
func (s *HistoryService) Between(ctx context.Context, userA, userB string, limit int) []domain.OutboundMessage {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	messages, err := s.messages.FindBetween(ctx, userA, userB, limit)
	if err != nil {
		s.log.Warn("direct history lookup failed", "userA", userA, "userB", userB, "error", err)
		return []domain.OutboundMessage{}
	}
	return s.enrich(messages)
}

func (s *HistoryService) enrich(messages []domain.Message) []domain.OutboundMessage {
	names := map[string]string{}
	return lo.Map(messages, func(m domain.Message, _ int) domain.OutboundMessage {
		name, ok := names[m.SenderID]
		if !ok {
			name = domain.UnknownUserName
			if user, err := s.users.FindByID(m.SenderID); err == nil {
				name = user.Name
			}
			names[m.SenderID] = name
		}
		return domain.NewOutbound(m, name)
	})
}
