package output

import "context"

// Completer is a black-box LLM: a system and a user prompt in, text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Name() string
}
