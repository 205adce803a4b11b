package models

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatContext is the rolling conversation history kept per visitor.
type ChatContext struct {
	Messages []ChatMessage `json:"messages"`
}
