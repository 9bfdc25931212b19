package review

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/models"
)

const calcDiff = `diff --git a/pkg/calc/calc.go b/pkg/calc/calc.go
--- a/pkg/calc/calc.go
+++ b/pkg/calc/calc.go
@@ -1,3 +1,4 @@
 package calc

-func Add(a, b int) int { return a + b }
+func Add(a, b int) int { return a + b + 1 }
+func Sub(a, b int) int { return a - b }
`

const twoFileDiff = calcDiff + `diff --git a/docs/README.md b/docs/README.md
--- a/docs/README.md
+++ b/docs/README.md
@@ -1 +1,2 @@
 # Readme
+More docs.
`

type serviceMocks struct {
	vcs      *MockVCSClient
	reviewer *MockHunkReviewer
	fix      *MockFixSuggester
	usage    *MockUsageReporter
}

func newTestService(t *testing.T, cfg *config.Config) (*Service, *serviceMocks) {
	t.Helper()
	mocks := &serviceMocks{
		vcs:      &MockVCSClient{},
		reviewer: &MockHunkReviewer{},
		fix:      &MockFixSuggester{},
		usage:    &MockUsageReporter{},
	}
	svc := NewService(
		WithConfig(cfg),
		WithVCSClient(mocks.vcs),
		WithReviewer(mocks.reviewer),
		WithFixSuggester(mocks.fix),
		WithUsageReporter(mocks.usage),
		WithTranslations(newTestTranslations(t)),
	)
	return svc, mocks
}

func testConfig() *config.Config {
	return &config.Config{
		GitHubToken:     "token",
		GeminiAPIKey:    "key",
		Model:           "gemini-2.5-flash",
		MaxOutputTokens: 700,
		SuggestFixes:    true,
		CommentLanguage: "en",
	}
}

func testPR() *models.PullRequestContext {
	return &models.PullRequestContext{
		Owner:       "test-owner",
		Repo:        "test-repo",
		Number:      42,
		Title:       "payload title",
		Description: "payload body",
		Action:      models.ActionOpened,
	}
}

func TestService_Run(t *testing.T) {
	t.Run("should publish one line comment and one summary for a single finding", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())
		pr := testPR()

		mocks.vcs.On("GetPR", mock.Anything, 42).
			Return(&models.PRDetails{Title: "Fresh title", Description: "Fresh description"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.MatchedBy(func(p *models.PullRequestContext) bool {
			return p.Title == "Fresh title"
		}), "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{{LineNumber: 3, Comment: "Off-by-one introduced in Add."}}, nil)

		mocks.fix.On("SuggestFix", mock.Anything, "pkg/calc/calc.go", mock.Anything, mock.Anything).
			Return("func Add(a, b int) int { return a + b }", nil)

		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.MatchedBy(func(comments []models.ReviewComment) bool {
			if len(comments) != 2 {
				return false
			}
			line, summary := comments[0], comments[1]
			return line.Path == "pkg/calc/calc.go" &&
				line.Line == 3 &&
				strings.Contains(line.Body, "Off-by-one introduced in Add.") &&
				strings.Contains(line.Body, "```go") &&
				summary.IsSummary()
		})).Return(nil)

		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "## MateReview Summary") &&
				strings.Contains(body, "1 finding raised")
		})).Return(nil)

		mocks.usage.On("Usage").Return(models.TokenUsage{TotalTokens: 500, Calls: 2})

		report, err := svc.Run(context.Background(), pr)

		require.NoError(t, err)
		assert.Equal(t, 1, report.FilesReviewed)
		assert.Equal(t, 1, report.HunksReviewed)
		assert.Equal(t, 1, report.FindingsCount)
		assert.Equal(t, 2, report.CommentsPosted)
		assert.InDelta(t, -4.3, report.Score, 1e-9)
		require.Len(t, report.Files, 1)
		assert.Equal(t, models.FileReport{Path: "pkg/calc/calc.go", Added: 2, Deleted: 1}, report.Files[0])
		require.NotNil(t, report.Usage)
		assert.Equal(t, 500, report.Usage.TotalTokens)

		// The caller's context stays untouched; the refresh works on a copy.
		assert.Equal(t, "payload title", pr.Title)

		mocks.vcs.AssertExpectations(t)
		mocks.reviewer.AssertExpectations(t)
		mocks.fix.AssertExpectations(t)
	})

	t.Run("should end gracefully when the diff cannot be fetched", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(nil, assert.AnError)
		mocks.vcs.On("GetDiff", mock.Anything, 42).
			Return("", domainErrors.ErrDiffUnavailable.WithError(assert.AnError))

		report, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		assert.Equal(t, &models.RunReport{}, report)
		mocks.reviewer.AssertNumberOfCalls(t, "ReviewHunk", 0)
		mocks.vcs.AssertNumberOfCalls(t, "CreateReview", 0)
		mocks.vcs.AssertNumberOfCalls(t, "CreatePRComment", 0)
	})

	t.Run("should end gracefully on an empty diff", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return("\n", nil)

		report, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		assert.Equal(t, &models.RunReport{}, report)
		mocks.reviewer.AssertNumberOfCalls(t, "ReviewHunk", 0)
	})

	t.Run("should fall back to payload details when the PR fetch fails", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(nil, assert.AnError)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)
		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.MatchedBy(func(p *models.PullRequestContext) bool {
			return p.Title == "payload title"
		}), "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{}, nil)

		_, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		mocks.reviewer.AssertExpectations(t)
	})

	t.Run("should keep going when a hunk review fails", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(twoFileDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return(nil, domainErrors.ErrAIGeneration.WithError(assert.AnError))
		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "docs/README.md", mock.Anything).
			Return([]models.Finding{}, nil)

		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.MatchedBy(func(comments []models.ReviewComment) bool {
			return len(comments) == 1 && comments[0].IsSummary()
		})).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "No issues found in this change.")
		})).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		report, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		assert.Equal(t, 2, report.HunksReviewed)
		assert.Equal(t, 0, report.FindingsCount)
		assert.Equal(t, 1, report.CommentsPosted)
		mocks.vcs.AssertExpectations(t)
	})

	t.Run("should keep the finding when the fix suggestion fails", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{{LineNumber: 4, Comment: "Sub lacks tests."}}, nil)
		mocks.fix.On("SuggestFix", mock.Anything, "pkg/calc/calc.go", mock.Anything, mock.Anything).
			Return("", domainErrors.ErrAIGeneration.WithError(assert.AnError))

		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.MatchedBy(func(comments []models.ReviewComment) bool {
			return len(comments) == 2 &&
				strings.Contains(comments[0].Body, "_No fix available for this finding._") &&
				!strings.Contains(comments[0].Body, "```")
		})).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		report, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		assert.Equal(t, 1, report.FindingsCount)
		mocks.vcs.AssertExpectations(t)
	})

	t.Run("should not ask for fixes when disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.SuggestFixes = false
		svc, mocks := newTestService(t, cfg)

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{{LineNumber: 3, Comment: "Off-by-one."}}, nil)

		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.MatchedBy(func(comments []models.ReviewComment) bool {
			return len(comments) == 2 && comments[0].Body == "Off-by-one."
		})).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		_, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		mocks.fix.AssertNumberOfCalls(t, "SuggestFix", 0)
	})

	t.Run("should mark previous comments as resolved and skip marked ones", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		existing := []models.ExistingComment{
			{ID: 1, Body: "old critique"},
			{ID: 2, Body: "already handled\n\nResolved automatically by MateReview."},
			{ID: 3, Body: "second old critique"},
		}

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return(existing, nil)

		// The first update fails; the loop still reaches the third comment.
		mocks.vcs.On("UpdateReviewComment", mock.Anything, int64(1), "old critique\n\nResolved automatically by MateReview.").
			Return(assert.AnError)
		mocks.vcs.On("UpdateReviewComment", mock.Anything, int64(3), "second old critique\n\nResolved automatically by MateReview.").
			Return(nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{}, nil)
		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		_, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		mocks.vcs.AssertNumberOfCalls(t, "UpdateReviewComment", 2)
		mocks.vcs.AssertExpectations(t)
	})

	t.Run("should exclude filtered paths from review but not from stats", func(t *testing.T) {
		cfg := testConfig()
		cfg.ExcludePatterns = []string{"**/*.md"}
		svc, mocks := newTestService(t, cfg)

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(twoFileDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)

		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{}, nil)

		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.Anything).Return(nil)
		mocks.vcs.On("CreatePRComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Reviewed 2 files:")
		})).Return(nil)
		mocks.usage.On("Usage").Return(models.TokenUsage{})

		report, err := svc.Run(context.Background(), testPR())

		require.NoError(t, err)
		assert.Equal(t, 1, report.FilesReviewed)
		mocks.reviewer.AssertNumberOfCalls(t, "ReviewHunk", 1)
		mocks.vcs.AssertExpectations(t)
	})

	t.Run("should surface a publish failure", func(t *testing.T) {
		svc, mocks := newTestService(t, testConfig())

		mocks.vcs.On("GetPR", mock.Anything, 42).Return(&models.PRDetails{Title: "t"}, nil)
		mocks.vcs.On("GetDiff", mock.Anything, 42).Return(calcDiff, nil)
		mocks.vcs.On("ListReviewComments", mock.Anything, 42).Return([]models.ExistingComment{}, nil)
		mocks.reviewer.On("ReviewHunk", mock.Anything, mock.Anything, "pkg/calc/calc.go", mock.Anything).
			Return([]models.Finding{}, nil)
		mocks.vcs.On("CreateReview", mock.Anything, 42, mock.Anything).
			Return(domainErrors.ErrPublishReview.WithError(assert.AnError))

		_, err := svc.Run(context.Background(), testPR())

		assert.ErrorIs(t, err, domainErrors.ErrPublishReview)
		mocks.vcs.AssertNumberOfCalls(t, "CreatePRComment", 0)
	})

	t.Run("should refuse to run half-configured", func(t *testing.T) {
		svc := NewService()

		_, err := svc.Run(context.Background(), testPR())

		assert.Error(t, err)
	})
}
