package tutor

// Config controls the tutor's LLM requests.
type Config struct {
	// MaxTokens is the token budget for a chat reply. Zero leaves the
	// provider default, which matters for models that spend output tokens
	// on thinking.
	MaxTokens int

	// Temperature controls reply randomness (0.0-1.0).
	Temperature float64

	// SolveMaxTokens is the token budget for an image explanation.
	SolveMaxTokens int
}

// DefaultConfig returns the standard tutor settings.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
	}
}
