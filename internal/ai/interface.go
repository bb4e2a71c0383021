package ai

import "context"

// TextGenerator is the contract for the generative model behind the summary
// service. Extracting it keeps the parsing and fallback logic testable and
// allows swapping providers (Gemini, OpenAI, ...) without touching callers.
type TextGenerator interface {
	// GenerateText sends a prompt and returns the raw response text.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
