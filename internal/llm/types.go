// internal/llm/types.go
package llm

import "context"

// Generator is the contract the pipeline needs from a text-generation backend:
// a role description plus a task prompt in, generated text out. Anything that
// satisfies it can drive the planning stages.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries one stage's delegate call
type GenerateRequest struct {
	// System describes the role the backend should assume (role, goal,
	// backstory rendered as one system message).
	System string
	// Prompt is the task description, including any source material from
	// earlier stages.
	Prompt string
	// Tools names the capabilities the stage declares. The default backend
	// lists them in the system message; it does not implement tool calling
	// itself.
	Tools []string
}

// Endpoint identifies a selected backend
type Endpoint struct {
	BaseURL string
	Model   string
	APIKey  string
}
