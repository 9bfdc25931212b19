package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrDiffUnavailable.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeVCS {
		t.Errorf("Expected type %s, got %s", TypeVCS, appErr.Type)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrPublishReview.WithContext("pr_number", 42).WithContext("comments", 3)

	if appErr.Context["pr_number"] != 42 {
		t.Errorf("Expected pr_number context 42, got %v", appErr.Context["pr_number"])
	}

	if appErr.Context["comments"] != 3 {
		t.Errorf("Expected comments context 3, got %v", appErr.Context["comments"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrTokenMissing,
			contains: []string{
				"CONFIGURATION",
				"GitHub token is missing",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrDiffUnavailable.WithError(errors.New("406 Not Acceptable")),
			contains: []string{
				"VCS",
				"pull request diff could not be fetched",
				"406 Not Acceptable",
			},
		},
		{
			name: "Error with context fields",
			err: ErrGeminiQuotaExceeded.WithError(errors.New("resource exhausted")).
				WithContext("model", "gemini-2.5-flash"),
			contains: []string{
				"AI",
				"Gemini API quota exceeded",
				"resource exhausted",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errMsg, substr) {
					t.Errorf("Expected error message to contain %q, got: %s", substr, errMsg)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	baseErr := errors.New("base error")
	appErr := ErrAIGeneration.WithError(baseErr)

	unwrapped := appErr.Unwrap()
	if unwrapped != baseErr {
		t.Errorf("Expected unwrapped error to be %v, got %v", baseErr, unwrapped)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should work with AppError")
	}
}

func TestAppError_Is(t *testing.T) {
	derived := ErrGeminiQuotaExceeded.
		WithError(errors.New("429 resource exhausted")).
		WithContext("model", "gemini-2.5-flash")

	if !errors.Is(derived, ErrGeminiQuotaExceeded) {
		t.Error("derived error should still match its sentinel")
	}

	if errors.Is(derived, ErrGeminiAPIKeyInvalid) {
		t.Error("derived error should not match a different sentinel")
	}

	if errors.Is(derived, errors.New("plain")) {
		t.Error("AppError should not match plain errors by Is")
	}
}

func TestAppError_ChainedContext(t *testing.T) {
	appErr := ErrGitHubRateLimit.
		WithError(errors.New("429 Too Many Requests")).
		WithContext("operation", "update comment").
		WithContext("comment_id", int64(7))

	if appErr.Context["operation"] != "update comment" {
		t.Errorf("Expected operation context, got %v", appErr.Context["operation"])
	}

	if appErr.Context["comment_id"] != int64(7) {
		t.Errorf("Expected comment_id context, got %v", appErr.Context["comment_id"])
	}

	// Ensure we didn't modify the original error
	if ErrGitHubRateLimit.Context != nil {
		t.Error("Original error should not have context")
	}
}
