package errors

import "fmt"

var (
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrFileNotFound    = fmt.Errorf("file not found")
	ErrInvalidUpload   = fmt.Errorf("invalid upload")
)
