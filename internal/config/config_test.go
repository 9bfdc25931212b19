package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/thomas-vilte/matereview/internal/errors"
)

func validConfig() *Config {
	return &Config{
		GitHubToken:     "ghp_test",
		GeminiAPIKey:    "AIza-test",
		Model:           "gemini-2.5-flash",
		MaxOutputTokens: 700,
		EventPath:       "/github/workflow/event.json",
		CommentLanguage: "en",
		SuggestFixes:    true,
		RequestTimeout:  45 * time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("should accept a complete configuration", func(t *testing.T) {
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() should not fail, got: %v", err)
		}
	})

	t.Run("should reject missing github token", func(t *testing.T) {
		cfg := validConfig()
		cfg.GitHubToken = ""
		if err := cfg.Validate(); !errors.Is(err, apperrors.ErrTokenMissing) {
			t.Errorf("expected ErrTokenMissing, got: %v", err)
		}
	})

	t.Run("should reject missing gemini api key", func(t *testing.T) {
		cfg := validConfig()
		cfg.GeminiAPIKey = ""
		if err := cfg.Validate(); !errors.Is(err, apperrors.ErrAPIKeyMissing) {
			t.Errorf("expected ErrAPIKeyMissing, got: %v", err)
		}
	})

	t.Run("should reject missing model", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model = ""
		if err := cfg.Validate(); !errors.Is(err, apperrors.ErrModelMissing) {
			t.Errorf("expected ErrModelMissing, got: %v", err)
		}
	})

	t.Run("should reject non positive max output tokens", func(t *testing.T) {
		for _, tokens := range []int{0, -1} {
			cfg := validConfig()
			cfg.MaxOutputTokens = tokens
			if err := cfg.Validate(); !errors.Is(err, apperrors.ErrInvalidMaxTokens) {
				t.Errorf("MaxOutputTokens=%d: expected ErrInvalidMaxTokens, got: %v", tokens, err)
			}
		}
	})

	t.Run("should reject missing event path", func(t *testing.T) {
		cfg := validConfig()
		cfg.EventPath = ""
		if err := cfg.Validate(); !errors.Is(err, apperrors.ErrEventPathMissing) {
			t.Errorf("expected ErrEventPathMissing, got: %v", err)
		}
	})

	t.Run("should apply defaults for optional fields", func(t *testing.T) {
		cfg := validConfig()
		cfg.MaxRetries = -3
		cfg.RequestTimeout = 0
		cfg.CommentLanguage = "klingon"

		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() should not fail, got: %v", err)
		}
		if cfg.MaxRetries != DefaultMaxRetries {
			t.Errorf("MaxRetries = %d, want %d", cfg.MaxRetries, DefaultMaxRetries)
		}
		if cfg.RequestTimeout != DefaultRequestTimeout {
			t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
		}
		if cfg.CommentLanguage != LangEN {
			t.Errorf("CommentLanguage = %q, want %q", cfg.CommentLanguage, LangEN)
		}
	})
}

func TestParseExcludePatterns(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "should split and trim patterns",
			raw:  "*.md, vendor/**,  dist/*.js",
			want: []string{"*.md", "vendor/**", "dist/*.js"},
		},
		{
			name: "should drop empty entries",
			raw:  "*.md,,  ,*.lock",
			want: []string{"*.md", "*.lock"},
		},
		{
			name: "should return nil for empty input",
			raw:  "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseExcludePatterns(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseExcludePatterns(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSupportsStructuredOutput(t *testing.T) {
	t.Run("should recognize known gemini models", func(t *testing.T) {
		for _, model := range SupportedModels() {
			if !SupportsStructuredOutput(string(model)) {
				t.Errorf("SupportsStructuredOutput(%q) = false, want true", model)
			}
		}
	})

	t.Run("should fall back to plain text for unknown identifiers", func(t *testing.T) {
		for _, model := range []string{"", "gpt-4o", "gemini-experimental-0801"} {
			if SupportsStructuredOutput(model) {
				t.Errorf("SupportsStructuredOutput(%q) = true, want false", model)
			}
		}
	})
}
