// Package domain contains core concepts of the chat relay.
// Messages are immutable once persisted, except for the single
// reconciliation path where a file upload claims an earlier record.
package domain

import (
	"time"
)

type MessageKind string

const (
	KindText MessageKind = "TEXT"
	KindFile MessageKind = "FILE"
)

// Message is a persisted chat message, text or file.
// A nil RecipientID means the message belongs to the broadcast topic.
type Message struct {
	ID          int64
	SenderID    string
	RecipientID *string
	Content     string
	FileName    *string
	FileType    *string
	FileSize    *int64
	FileData    []byte
	Kind        MessageKind
	SentAt      time.Time
}

// Direct reports whether the message targets a single recipient.
func (m Message) Direct() bool {
	return m.RecipientID != nil
}

// FileCaption is the content shown in place of file bytes in the timeline.
func FileCaption(name string) string {
	return "📎 " + name
}

// ChatEvent is an inbound send request, before persistence and routing.
type ChatEvent struct {
	SenderID    string      `json:"senderId"`
	RecipientID *string     `json:"recipientId,omitempty"`
	Content     string      `json:"content"`
	Kind        MessageKind `json:"messageType"`
	FileName    *string     `json:"fileName,omitempty"`
	FileType    *string     `json:"fileType,omitempty"`
	FileSize    *int64      `json:"fileSize,omitempty"`
}

// OutboundMessage is the delivery and history representation of a message,
// enriched with the resolved sender display name.
type OutboundMessage struct {
	ID          int64       `json:"id"`
	SenderID    string      `json:"senderId"`
	RecipientID *string     `json:"recipientId,omitempty"`
	SenderName  string      `json:"senderName"`
	Content     string      `json:"content"`
	Kind        MessageKind `json:"messageType"`
	FileName    *string     `json:"fileName,omitempty"`
	FileType    *string     `json:"fileType,omitempty"`
	FileSize    *int64      `json:"fileSize,omitempty"`
	SentAt      time.Time   `json:"sentAt"`
}

// NewOutbound builds the outbound representation of a persisted message.
// File bytes never leave through the broker, only through the download API.
func NewOutbound(m Message, senderName string) OutboundMessage {
	return OutboundMessage{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		SenderName:  senderName,
		Content:     m.Content,
		Kind:        m.Kind,
		FileName:    m.FileName,
		FileType:    m.FileType,
		FileSize:    m.FileSize,
		SentAt:      m.SentAt,
	}
}
