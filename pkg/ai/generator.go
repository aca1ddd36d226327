package ai

import "context"

// ChatMessage is one turn passed to a model.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one generation call: a system instruction, the ordered
// conversation turns, and sampling parameters. MaxTokens <= 0 leaves the
// provider default in place.
type Request struct {
	System      string
	Messages    []ChatMessage
	Temperature float32
	MaxTokens   int
}

// Generator produces text from a chat-style request.
// All providers (OpenAI-compatible such as Groq, Gemini, Ollama) implement
// this interface. Callers own the fallback behavior: a failed call must
// degrade to a documented static value, never abort the caller's turn.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
