//go:generate go run go.uber.org/mock/mockgen -source=nats.go -destination=../mocks/mock_broker.go -package=mocks

// Package broker adapts NATS as the delivery transport. Delivery is
// fire-and-forget: a published payload that finds no subscriber is gone,
// which is the accepted trade-off of this relay.
package broker

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

const (
	// ChannelMessages carries routed chat messages.
	ChannelMessages = "messages"
	// ChannelTyping carries ephemeral typing notifications.
	ChannelTyping = "typing"
)

type IBroker interface {
	PublishBroadcast(channel string, payload any) error
	PublishToUser(userID, channel string, payload any) error
}

type NatsBroker struct {
	nc *nats.Conn
}

func NewNatsBroker(url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NatsBroker{nc: nc}, nil
}

func (b *NatsBroker) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}

// PublishBroadcast delivers the payload once to the shared topic.
func (b *NatsBroker) PublishBroadcast(channel string, payload any) error {
	return b.publish(broadcastSubject(channel), payload)
}

// PublishToUser delivers the payload to a single user's private channel.
// Every active connection of that user receives it.
func (b *NatsBroker) PublishToUser(userID, channel string, payload any) error {
	return b.publish(userSubject(userID, channel), payload)
}

func (b *NatsBroker) publish(subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	if err := b.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to subject %q: %w", subject, err)
	}
	return nil
}

// SubscribeBroadcast wires a handler to the shared topic. The caller owns the
// returned subscription and must unsubscribe when the connection closes.
func (b *NatsBroker) SubscribeBroadcast(channel string, handler func(payload []byte)) (*nats.Subscription, error) {
	return b.subscribe(broadcastSubject(channel), handler)
}

// SubscribeUser wires a handler to one user's private channel.
func (b *NatsBroker) SubscribeUser(userID, channel string, handler func(payload []byte)) (*nats.Subscription, error) {
	return b.subscribe(userSubject(userID, channel), handler)
}

func (b *NatsBroker) subscribe(subject string, handler func(payload []byte)) (*nats.Subscription, error) {
	sub, err := b.nc.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %q: %w", subject, err)
	}
	return sub, nil
}

func broadcastSubject(channel string) string {
	return fmt.Sprintf("chat.topic.%s", channel)
}

func userSubject(userID, channel string) string {
	return fmt.Sprintf("chat.user.%s.%s", userID, channel)
}
