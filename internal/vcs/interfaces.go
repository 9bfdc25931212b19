package vcs

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/models"
)

// VCSClient defines common methods to interact with the APIs of version control systems.
type VCSClient interface {
	// GetPR gets the headline data of a Pull Request (title and description).
	GetPR(ctx context.Context, prNumber int) (*models.PRDetails, error)
	// GetDiff gets the unified diff of a Pull Request.
	GetDiff(ctx context.Context, prNumber int) (string, error)
	// ListReviewComments lists every inline review comment currently on the PR.
	ListReviewComments(ctx context.Context, prNumber int) ([]models.ExistingComment, error)
	// UpdateReviewComment replaces the body of an existing review comment.
	UpdateReviewComment(ctx context.Context, commentID int64, body string) error
	// CreateReview publishes inline comments as a single non-blocking review.
	CreateReview(ctx context.Context, prNumber int, comments []models.ReviewComment) error
	// CreatePRComment posts a top-level comment on the PR conversation.
	CreatePRComment(ctx context.Context, prNumber int, body string) error
}
