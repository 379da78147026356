package model

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role" binding:"required,oneof=system user assistant"`
	Content string   `json:"content"`
}

// CachedToken is a provider bearer token with its absolute expiry.
type CachedToken struct {
	AccessToken string
	ExpiresAt   int64 // epoch milliseconds
}
