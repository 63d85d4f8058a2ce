package github

// Config holds configuration for GitHub operations
type Config struct {
	PerPage        int
	MaxCommitPages int
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		PerPage:        100,
		MaxCommitPages: 0,
	}
}
