package config

import (
	"strings"
	"time"

	"github.com/thomas-vilte/matereview/internal/errors"
)

// Config carries every input the action receives. It is built once in
// cmd/main.go from the INPUT_* environment and handed to the components
// explicitly; nothing reads the environment after startup.
type Config struct {
	GitHubToken     string
	GeminiAPIKey    string
	Model           string
	MaxOutputTokens int
	ExcludePatterns []string

	CommentLanguage string
	SuggestFixes    bool
	MaxRetries      int
	RequestTimeout  time.Duration

	// EventPath points at the JSON payload GitHub writes for the run
	// (GITHUB_EVENT_PATH).
	EventPath string
}

const (
	DefaultCommentLanguage = LangEN
	DefaultSuggestFixes    = true
	DefaultMaxRetries      = 0
	DefaultRequestTimeout  = 45 * time.Second
)

func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return errors.ErrTokenMissing
	}
	if c.GeminiAPIKey == "" {
		return errors.ErrAPIKeyMissing
	}
	if c.Model == "" {
		return errors.ErrModelMissing
	}
	if c.MaxOutputTokens <= 0 {
		return errors.ErrInvalidMaxTokens.WithContext("max_output_tokens", c.MaxOutputTokens)
	}
	if c.EventPath == "" {
		return errors.ErrEventPathMissing
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	c.CommentLanguage = NormalizeLanguage(c.CommentLanguage)
	return nil
}

// ParseExcludePatterns splits the comma separated exclude_patterns input.
// Surrounding whitespace is trimmed per pattern and empty entries dropped,
// so "*.md, vendor/**,," yields ["*.md", "vendor/**"].
func ParseExcludePatterns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	patterns := make([]string, 0, len(parts))
	for _, part := range parts {
		pattern := strings.TrimSpace(part)
		if pattern == "" {
			continue
		}
		patterns = append(patterns, pattern)
	}
	return patterns
}
