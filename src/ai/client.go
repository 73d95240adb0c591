package ai

import "context"

// Client is the chat-completion collaborator behind insights and
// auto-categorization. Callers treat any error as a signal to fall back to
// deterministic content; failures never surface to the end user.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
