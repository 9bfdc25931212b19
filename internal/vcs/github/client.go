package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error)
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error)
	EditComment(ctx context.Context, owner, repo string, commentID int64, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	owner         string
	repo          string
	token         string
	httpClient    *http.Client
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		owner:         owner,
		repo:          repo,
		token:         token,
		httpClient:    httpClient,
	}
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	issuesService IssuesService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
		token:         "",
		httpClient:    &http.Client{},
	}
}

func (ghc *GitHubClient) GetPR(ctx context.Context, prNumber int) (*models.PRDetails, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"pr_number", prNumber)

	pr, resp, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized {
				return nil, domainErrors.ErrGitHubTokenInvalid.
					WithContext("operation", "get PR").
					WithContext("pr_number", prNumber)
			}
			if resp.StatusCode == http.StatusNotFound {
				return nil, domainErrors.ErrRepositoryNotFound.
					WithContext("operation", "get PR").
					WithContext("pr_number", prNumber).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
		}
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", ghc.owner,
			"repo", ghc.repo,
			"pr_number", prNumber)
		return nil, fmt.Errorf("failed to get PR #%d: %w", prNumber, err)
	}

	details := &models.PRDetails{
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
	}

	log.Debug("github PR fetched successfully",
		"pr_number", prNumber,
		"title", details.Title)

	return details, nil
}

func (ghc *GitHubClient) GetDiff(ctx context.Context, prNumber int) (string, error) {
	log := logger.FromContext(ctx)

	diff, resp, err := ghc.prService.GetRaw(ctx, ghc.owner, ghc.repo, prNumber, github.RawOptions{Type: github.Diff})
	if err != nil {
		// If 406 error (diff too large), reassemble it from per-file patches
		if resp != nil && resp.StatusCode == http.StatusNotAcceptable {
			log.Warn("PR diff too large, assembling it from per-file patches",
				"pr_number", prNumber)
			diff, err = ghc.getDiffFromFiles(ctx, prNumber)
			if err != nil {
				return "", domainErrors.ErrDiffUnavailable.
					WithError(err).
					WithContext("pr_number", prNumber)
			}
			return diff, nil
		}
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized {
				return "", domainErrors.ErrGitHubTokenInvalid.
					WithContext("operation", "get diff").
					WithContext("pr_number", prNumber)
			}
			if resp.StatusCode == http.StatusNotFound {
				return "", domainErrors.ErrRepositoryNotFound.
					WithContext("operation", "get diff").
					WithContext("pr_number", prNumber).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
		}
		log.Error("failed to fetch PR diff",
			"error", err,
			"pr_number", prNumber)
		return "", domainErrors.ErrDiffUnavailable.
			WithError(err).
			WithContext("pr_number", prNumber)
	}

	log.Debug("PR diff fetched successfully",
		"pr_number", prNumber,
		"diff_size", len(diff))

	return diff, nil
}

// getDiffFromFiles rebuilds a unified diff from the per-file patches when the
// whole-PR diff exceeds the host's size limit. Files without a textual patch
// (binaries, oversized files) are skipped.
func (ghc *GitHubClient) getDiffFromFiles(ctx context.Context, prNumber int) (string, error) {
	log := logger.FromContext(ctx)
	var combinedDiff strings.Builder

	filesCount := 0
	opts := &github.ListOptions{PerPage: 100}
	for {
		files, resp, err := ghc.prService.ListFiles(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			return "", fmt.Errorf("failed to list files for PR #%d: %w", prNumber, err)
		}

		for _, file := range files {
			patch := file.GetPatch()
			if patch == "" {
				continue
			}

			oldName, newName := file.GetFilename(), file.GetFilename()
			if file.GetPreviousFilename() != "" {
				oldName = file.GetPreviousFilename()
			}

			combinedDiff.WriteString(fmt.Sprintf("diff --git a/%s b/%s\n", oldName, newName))
			switch file.GetStatus() {
			case "added":
				combinedDiff.WriteString(fmt.Sprintf("--- /dev/null\n+++ b/%s\n", newName))
			case "removed":
				combinedDiff.WriteString(fmt.Sprintf("--- a/%s\n+++ /dev/null\n", oldName))
			default:
				combinedDiff.WriteString(fmt.Sprintf("--- a/%s\n+++ b/%s\n", oldName, newName))
			}
			combinedDiff.WriteString(patch)
			combinedDiff.WriteString("\n")
			filesCount++
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("assembled diff from per-file patches",
		"pr_number", prNumber,
		"files_count", filesCount)

	return combinedDiff.String(), nil
}

func (ghc *GitHubClient) ListReviewComments(ctx context.Context, prNumber int) ([]models.ExistingComment, error) {
	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var comments []models.ExistingComment
	for {
		page, resp, err := ghc.prService.ListComments(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			if resp != nil {
				if resp.StatusCode == http.StatusUnauthorized {
					return nil, domainErrors.ErrGitHubTokenInvalid.
						WithContext("operation", "list review comments").
						WithContext("pr_number", prNumber)
				}
				if resp.StatusCode == http.StatusNotFound {
					return nil, domainErrors.ErrRepositoryNotFound.
						WithContext("operation", "list review comments").
						WithContext("pr_number", prNumber).
						WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
				}
			}
			return nil, fmt.Errorf("failed to list review comments for PR #%d: %w", prNumber, err)
		}

		for _, comment := range page {
			comments = append(comments, models.ExistingComment{
				ID:   comment.GetID(),
				Body: comment.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

func (ghc *GitHubClient) UpdateReviewComment(ctx context.Context, commentID int64, body string) error {
	comment := &github.PullRequestComment{
		Body: github.Ptr(body),
	}

	_, resp, err := ghc.prService.EditComment(ctx, ghc.owner, ghc.repo, commentID, comment)
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusForbidden {
				return domainErrors.ErrGitHubInsufficientPerms.
					WithContext("operation", "update review comment").
					WithContext("comment_id", commentID).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
			if resp.StatusCode == http.StatusNotFound {
				return domainErrors.ErrRepositoryNotFound.
					WithContext("operation", "update review comment").
					WithContext("comment_id", commentID)
			}
		}
		return fmt.Errorf("failed to update review comment %d: %w", commentID, err)
	}

	return nil
}

func (ghc *GitHubClient) CreateReview(ctx context.Context, prNumber int, comments []models.ReviewComment) error {
	log := logger.FromContext(ctx)

	draftComments := make([]*github.DraftReviewComment, 0, len(comments))
	for _, comment := range comments {
		// The summary sentinel attaches to the PR as a whole, never to a line.
		if comment.IsSummary() {
			continue
		}
		draftComments = append(draftComments, &github.DraftReviewComment{
			Path: github.Ptr(comment.Path),
			Line: github.Ptr(comment.Line),
			Side: github.Ptr("RIGHT"),
			Body: github.Ptr(comment.Body),
		})
	}

	if len(draftComments) == 0 {
		log.Debug("no inline comments to publish", "pr_number", prNumber)
		return nil
	}

	review := &github.PullRequestReviewRequest{
		Event:    github.Ptr("COMMENT"),
		Comments: draftComments,
	}

	_, resp, err := ghc.prService.CreateReview(ctx, ghc.owner, ghc.repo, prNumber, review)
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusTooManyRequests {
				return domainErrors.ErrGitHubRateLimit.
					WithContext("retry_after", resp.Header.Get("Retry-After")).
					WithContext("operation", "create review")
			}
			if resp.StatusCode == http.StatusForbidden {
				return domainErrors.ErrGitHubInsufficientPerms.
					WithContext("operation", "create review").
					WithContext("pr_number", prNumber).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
			if resp.StatusCode == http.StatusUnprocessableEntity {
				return domainErrors.ErrPublishReview.
					WithError(err).
					WithContext("pr_number", prNumber).
					WithContext("comments_count", len(draftComments))
			}
		}
		log.Error("failed to create PR review",
			"error", err,
			"pr_number", prNumber,
			"comments_count", len(draftComments))
		return domainErrors.ErrPublishReview.
			WithError(err).
			WithContext("pr_number", prNumber)
	}

	log.Debug("PR review created successfully",
		"pr_number", prNumber,
		"comments_count", len(draftComments))

	return nil
}

func (ghc *GitHubClient) CreatePRComment(ctx context.Context, prNumber int, body string) error {
	comment := &github.IssueComment{
		Body: github.Ptr(body),
	}

	_, resp, err := ghc.issuesService.CreateComment(ctx, ghc.owner, ghc.repo, prNumber, comment)
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusForbidden {
				return domainErrors.ErrGitHubInsufficientPerms.
					WithContext("operation", "create PR comment").
					WithContext("pr_number", prNumber).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
			if resp.StatusCode == http.StatusNotFound {
				return domainErrors.ErrRepositoryNotFound.
					WithContext("operation", "create PR comment").
					WithContext("pr_number", prNumber).
					WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
			}
		}
		return fmt.Errorf("failed to create comment on PR #%d: %w", prNumber, err)
	}

	return nil
}
