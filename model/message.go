package model

import "time"

// Conversation roles. The history only ever contains these three; adapters
// map them onto whatever their wire format calls them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single conversation turn
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}
