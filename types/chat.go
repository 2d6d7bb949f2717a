package types

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamHandler receives incremental answer deltas during streaming chat.
type StreamHandler func(delta string)
