package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequest), responseArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.String(0), responseArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.CommitFile), responseArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) CreateReview(ctx context.Context, owner, repo string, number int, review *github.PullRequestReviewRequest) (*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, review)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestReview), responseArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.PullRequestComment), responseArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) EditComment(ctx context.Context, owner, repo string, commentID int64, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, commentID, comment)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequestComment), responseArg(args.Get(1)), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, comment)
	if args.Get(0) == nil {
		return nil, responseArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.IssueComment), responseArg(args.Get(1)), args.Error(2)
}

func responseArg(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
