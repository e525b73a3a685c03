package services

import (
	"context"
	"log/slog"
	"time"

	"chat-relay/broker"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type IChatRouter interface {
	Route(ctx context.Context, event domain.ChatEvent) domain.RouteResult
}

// ChatRouter decides persistence and fan-out for inbound chat events.
// It is stateless across calls: every invocation is a fresh round trip to
// the stores, and a failure anywhere degrades the result instead of
// failing the caller.
type ChatRouter struct {
	log      *slog.Logger
	messages repositories.IMessageRepository
	users    repositories.IUserRepository
	typing   ITypingNotifier
	broker   broker.IBroker
}

func NewChatRouter(log *slog.Logger, messages repositories.IMessageRepository,
	users repositories.IUserRepository, typing ITypingNotifier, b broker.IBroker) *ChatRouter {
	return &ChatRouter{log: log, messages: messages, users: users, typing: typing, broker: b}
}

// Route handles one inbound event:
//  1. emit a best-effort stop-typing for the sender
//  2. persist the message, reusing an unclaimed upload record for FILE kinds
//  3. resolve the sender display name, "Unknown" on failure
//  4. deliver to both private channels (direct) or the broadcast topic
//
// Persistence and delivery are not linked transactionally: a record whose
// delivery is lost stays persisted.
func (r *ChatRouter) Route(ctx context.Context, event domain.ChatEvent) domain.RouteResult {
	result := domain.OkResult()

	r.typing.Notify(event.SenderID, event.RecipientID, false)

	saved := r.persist(ctx, event, &result)
	name := r.senderName(event.SenderID, &result)
	outbound := domain.NewOutbound(saved, name)

	// The sender gets its own direct messages echoed back: other active
	// connections of the same user see the message too.
	var err error
	if saved.Direct() {
		if err = r.broker.PublishToUser(saved.SenderID, broker.ChannelMessages, outbound); err != nil {
			r.log.Warn("sender delivery failed", "messageId", saved.ID, "error", err)
			result.Degrade(err)
		}
		if err = r.broker.PublishToUser(*saved.RecipientID, broker.ChannelMessages, outbound); err != nil {
			r.log.Warn("recipient delivery failed", "messageId", saved.ID, "error", err)
			result.Degrade(err)
		}
	} else {
		if err = r.broker.PublishBroadcast(broker.ChannelMessages, outbound); err != nil {
			r.log.Warn("broadcast delivery failed", "messageId", saved.ID, "error", err)
			result.Degrade(err)
		}
	}

	result.Message = outbound
	return result
}

// persist resolves the record the event maps to. TEXT events always create a
// record. FILE events first look for the unclaimed record created by the
// upload step and reuse its identity; the lookup and the fallback insert are
// not serialized, so concurrent sends for the same (sender, file name) pair
// can create duplicates.
func (r *ChatRouter) persist(ctx context.Context, event domain.ChatEvent, result *domain.RouteResult) domain.Message {
	message := messageFromEvent(event, time.Now().UTC())

	if event.Kind == domain.KindFile && event.FileName != nil {
		existing, err := r.messages.FindUnclaimedFile(ctx, event.SenderID, *event.FileName)
		if err == nil {
			return existing
		}
		if err != errors.ErrMessageNotFound {
			r.log.Warn("file reconciliation lookup failed", "senderId", event.SenderID, "error", err)
			result.Degrade(err)
		}
	}

	saved, err := r.messages.Insert(ctx, message)
	if err != nil {
		r.log.Warn("message persistence failed", "senderId", event.SenderID, "error", err)
		result.Degrade(err)
		// deliver the unsaved representation rather than dropping the event
		return message
	}
	return saved
}

func (r *ChatRouter) senderName(senderID string, result *domain.RouteResult) string {
	user, err := r.users.FindByID(senderID)
	if err != nil {
		if err != errors.ErrUserNotFound {
			r.log.Warn("sender name lookup failed", "senderId", senderID, "error", err)
		}
		result.Degrade(err)
		return domain.UnknownUserName
	}
	return user.Name
}

func messageFromEvent(event domain.ChatEvent, at time.Time) domain.Message {
	message := domain.Message{
		SenderID:    event.SenderID,
		RecipientID: event.RecipientID,
		Content:     event.Content,
		Kind:        event.Kind,
		SentAt:      at,
	}
	if event.Kind == domain.KindFile {
		message.FileName = event.FileName
		message.FileType = event.FileType
		message.FileSize = event.FileSize
	}
	return message
}
