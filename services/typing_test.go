package services

import (
	"fmt"
	"testing"

	"chat-relay/broker"
	"chat-relay/domain"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTypingNotifier_Notify(t *testing.T) {
	t.Run("broadcast typing goes once to the shared typing topic", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		b := mocks.NewMockIBroker(ctrl)
		notifier := NewTypingNotifier(testLogger(), users, b)

		users.EXPECT().FindByID("user1").
			Return(domain.User{ID: "user1", Name: "Alice Johnson"}, nil)
		b.EXPECT().
			PublishBroadcast(broker.ChannelTyping, gomock.Any()).
			DoAndReturn(func(_ string, payload any) error {
				notification := payload.(domain.TypingNotification)
				req.Equal("user1", notification.UserID)
				req.Equal("Alice Johnson", notification.UserName)
				req.True(notification.Typing)
				return nil
			})

		result := notifier.Notify("user1", nil, true)
		req.Equal(domain.RouteOk, result.Status)
	})

	t.Run("direct typing reaches only the recipient, no sender echo", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		b := mocks.NewMockIBroker(ctrl)
		notifier := NewTypingNotifier(testLogger(), users, b)
		recipient := "user2"

		users.EXPECT().FindByID("user1").
			Return(domain.User{ID: "user1", Name: "Alice Johnson"}, nil)
		b.EXPECT().PublishToUser("user2", broker.ChannelTyping, gomock.Any()).Return(nil).Times(1)

		result := notifier.Notify("user1", &recipient, false)
		req.Equal(domain.RouteOk, result.Status)
	})

	t.Run("name lookup failure falls back to Unknown and still delivers", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		b := mocks.NewMockIBroker(ctrl)
		notifier := NewTypingNotifier(testLogger(), users, b)
		cause := fmt.Errorf("directory down")

		users.EXPECT().FindByID("user1").Return(domain.User{}, cause)
		b.EXPECT().
			PublishBroadcast(broker.ChannelTyping, gomock.Any()).
			DoAndReturn(func(_ string, payload any) error {
				req.Equal(domain.UnknownUserName, payload.(domain.TypingNotification).UserName)
				return nil
			})

		result := notifier.Notify("user1", nil, true)
		req.Equal(domain.RouteDegraded, result.Status)
		req.ErrorIs(result.Cause, cause)
	})

	t.Run("delivery failure is absorbed into the result", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		b := mocks.NewMockIBroker(ctrl)
		notifier := NewTypingNotifier(testLogger(), users, b)
		cause := fmt.Errorf("broker down")

		users.EXPECT().FindByID("user1").
			Return(domain.User{ID: "user1", Name: "Alice Johnson"}, nil)
		b.EXPECT().PublishBroadcast(broker.ChannelTyping, gomock.Any()).Return(cause)

		result := notifier.Notify("user1", nil, true)
		req.Equal(domain.RouteDegraded, result.Status)
		req.ErrorIs(result.Cause, cause)
	})
}
