package domain

import "time"

// Session tracks online state per user, one row per user id.
// Concurrent logins are last-write-wins.
type Session struct {
	ID           int64
	UserID       string
	Online       bool
	LastActivity time.Time
}
