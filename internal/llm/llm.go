package llm

import "context"

// Backend turns a prompt into reply text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
