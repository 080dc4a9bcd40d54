package core

import "context"

// Roles used in chat turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat turn.
type Message struct {
	Role    string
	Content string
}

// Options controls model behavior; zero values fall back to the client's defaults.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
}

// Client is a provider-agnostic chat-completion interface.
type Client interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// SplitSystem separates system turns from the conversation, for providers that take the
// system prompt as a separate field.
func SplitSystem(messages []Message) (string, []Message) {
	var system string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
