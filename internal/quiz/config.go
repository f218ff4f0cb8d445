package quiz

// Config controls quiz generation requests.
type Config struct {
	// MaxTokens is the token budget for the quiz JSON. Zero leaves the
	// provider default.
	MaxTokens int

	// Temperature controls question variety (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{Temperature: 0.7}
}
