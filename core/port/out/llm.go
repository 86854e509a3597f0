package out

import "context"

// LLM is a chat-completion provider.
type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// CompleteJSON requests a JSON-object response.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
