package domain

// TypingNotification is an ephemeral presence payload. It is constructed,
// delivered and discarded; nothing about typing is ever persisted.
type TypingNotification struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Typing   bool   `json:"isTyping"`

	// RecipientID picks unicast delivery; it is routing metadata,
	// not part of the payload clients receive.
	RecipientID *string `json:"-"`
}
