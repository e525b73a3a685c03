//go:generate go run go.uber.org/mock/mockgen -source=typing.go -destination=../mocks/mock_typing_notifier.go -package=mocks
package services

import (
	"log/slog"

	"chat-relay/broker"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type ITypingNotifier interface {
	Notify(userID string, recipientID *string, typing bool) domain.RouteResult
}

// TypingNotifier converts start/stop typing events into ephemeral
// notifications. Nothing here touches the message store.
type TypingNotifier struct {
	log    *slog.Logger
	users  repositories.IUserRepository
	broker broker.IBroker
}

func NewTypingNotifier(log *slog.Logger, users repositories.IUserRepository, b broker.IBroker) *TypingNotifier {
	return &TypingNotifier{log: log, users: users, broker: b}
}

// Notify resolves the display name and delivers the notification. Unicast
// goes to the recipient only; echoing typing state back to its author is
// pointless. Failures are absorbed into the result.
func (n *TypingNotifier) Notify(userID string, recipientID *string, typing bool) domain.RouteResult {
	result := domain.OkResult()

	name := domain.UnknownUserName
	user, err := n.users.FindByID(userID)
	if err != nil {
		if err != errors.ErrUserNotFound {
			n.log.Warn("typing name lookup failed", "userId", userID, "error", err)
		}
		result.Degrade(err)
	} else {
		name = user.Name
	}

	notification := domain.TypingNotification{
		UserID:      userID,
		UserName:    name,
		Typing:      typing,
		RecipientID: recipientID,
	}

	if recipientID != nil {
		err = n.broker.PublishToUser(*recipientID, broker.ChannelTyping, notification)
	} else {
		err = n.broker.PublishBroadcast(broker.ChannelTyping, notification)
	}
	if err != nil {
		n.log.Warn("typing delivery failed", "userId", userID, "error", err)
		result.Degrade(err)
	}
	return result
}
