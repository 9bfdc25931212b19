package ai

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/models"
)

// HunkReviewer is an interface that defines the service critiquing one hunk
// of a changed file.
type HunkReviewer interface {
	// ReviewHunk returns the findings for the hunk, each anchored to a
	// new-file line present in the hunk. An empty slice is a valid answer
	// meaning the model had nothing to flag.
	ReviewHunk(ctx context.Context, pr *models.PullRequestContext, filePath string, hunk models.DiffHunk) ([]models.Finding, error)
}

// FixSuggester defines the service that proposes a concrete replacement for
// the code a finding points at.
type FixSuggester interface {
	// SuggestFix returns raw code for the affected lines, without fences or
	// explanations.
	SuggestFix(ctx context.Context, filePath string, hunk models.DiffHunk, finding models.Finding) (string, error)
}

// UsageReporter exposes the token usage accumulated across model calls.
type UsageReporter interface {
	Usage() models.TokenUsage
}
