// internal/handlers/compare/config.go
package compare

// Config holds comparison tuning.
type Config struct {
	// SimilarLimit caps how many lookalike jurisdictions a find-similar
	// answer returns.
	SimilarLimit int
}

func DefaultConfig() *Config {
	return &Config{SimilarLimit: 3}
}
