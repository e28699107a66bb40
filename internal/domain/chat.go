package domain

import "time"

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an assistant conversation
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatReply is the assistant's answer to one prompt
type ChatReply struct {
	Response   string    `json:"response"`
	Model      string    `json:"model"`
	TokensUsed int       `json:"tokens_used"`
	Timestamp  time.Time `json:"timestamp"`
}
