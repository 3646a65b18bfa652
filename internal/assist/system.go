// Package assist wraps an OpenAI-compatible chat-completions endpoint with
// the document-aware prompts used by the reader: summarization, grounded
// question answering, conversational chat, and voice command interpretation.
package assist

import "context"

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// System defines the assistant operations. Every method returns ErrDisabled
// when no API key is configured.
type System interface {
	// Enabled reports whether an upstream endpoint is configured.
	Enabled() bool

	// Summarize produces a concise summary of the given document text.
	Summarize(ctx context.Context, text string) (string, error)

	// Answer responds to a question grounded in the given document context.
	Answer(ctx context.Context, question, docContext string) (string, error)

	// Chat continues a conversation grounded in the given document context.
	Chat(ctx context.Context, messages []Message, docContext string) (string, error)

	// Command interprets a voice utterance as a reader action.
	Command(ctx context.Context, utterance string) (string, error)
}
