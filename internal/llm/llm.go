// Package llm is the completion client behind the natural-language filter.
// Only dataset metadata is ever placed in a prompt.
package llm

import (
	"context"
	"strings"
)

// Provider abstracts an LLM API behind a single synchronous completion method.
type Provider interface {
	// Complete sends a prompt and returns the model's text. Implementations
	// must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message.
	Prompt string

	// SystemPrompt sets the system instruction.
	SystemPrompt string

	// Model overrides the provider's default model when set.
	Model string

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Nil uses the provider default.
	Temperature *float64
}

// Response holds the result of a completion call.
type Response struct {
	Content string

	// Model is the model that served the request, which may differ from the
	// requested one.
	Model string

	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ExtractJSON strips surrounding whitespace and a Markdown code fence from a
// model reply so the remainder can be decoded as JSON.
func ExtractJSON(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
