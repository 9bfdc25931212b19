package review

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matereview/internal/models"
)

type (
	MockVCSClient struct {
		mock.Mock
	}

	MockHunkReviewer struct {
		mock.Mock
	}

	MockFixSuggester struct {
		mock.Mock
	}

	MockUsageReporter struct {
		mock.Mock
	}
)

func (m *MockVCSClient) GetPR(ctx context.Context, prNumber int) (*models.PRDetails, error) {
	args := m.Called(ctx, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PRDetails), args.Error(1)
}

func (m *MockVCSClient) GetDiff(ctx context.Context, prNumber int) (string, error) {
	args := m.Called(ctx, prNumber)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) ListReviewComments(ctx context.Context, prNumber int) ([]models.ExistingComment, error) {
	args := m.Called(ctx, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExistingComment), args.Error(1)
}

func (m *MockVCSClient) UpdateReviewComment(ctx context.Context, commentID int64, body string) error {
	args := m.Called(ctx, commentID, body)
	return args.Error(0)
}

func (m *MockVCSClient) CreateReview(ctx context.Context, prNumber int, comments []models.ReviewComment) error {
	args := m.Called(ctx, prNumber, comments)
	return args.Error(0)
}

func (m *MockVCSClient) CreatePRComment(ctx context.Context, prNumber int, body string) error {
	args := m.Called(ctx, prNumber, body)
	return args.Error(0)
}

func (m *MockHunkReviewer) ReviewHunk(ctx context.Context, pr *models.PullRequestContext, filePath string, hunk models.DiffHunk) ([]models.Finding, error) {
	args := m.Called(ctx, pr, filePath, hunk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Finding), args.Error(1)
}

func (m *MockFixSuggester) SuggestFix(ctx context.Context, filePath string, hunk models.DiffHunk, finding models.Finding) (string, error) {
	args := m.Called(ctx, filePath, hunk, finding)
	return args.String(0), args.Error(1)
}

func (m *MockUsageReporter) Usage() models.TokenUsage {
	args := m.Called()
	return args.Get(0).(models.TokenUsage)
}
