package domain

// UnknownUserName is substituted whenever a sender's display name
// cannot be resolved. Resolution failure never blocks delivery.
const UnknownUserName = "Unknown"

// StatusActive is the directory status of users listed to clients.
const StatusActive = "ACTIVE"

// User is a directory entry. The relay only ever reads it.
type User struct {
	ID     string `json:"userId"`
	Name   string `json:"userName"`
	Email  string `json:"email"`
	Status string `json:"status"`
}
