package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeEvent         ErrorType = "EVENT"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by type and message, so errors.Is keeps working
// on copies derived with WithError or WithContext.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Set the 'github_token' input of the action, e.g. github_token: ${{ secrets.GITHUB_TOKEN }}")

	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "Gemini API key is missing", nil).
				WithSuggestion("Set the 'gemini_api_key' input of the action from a repository secret")

	ErrModelMissing = NewAppError(TypeConfiguration, "Gemini model is missing", nil).
			WithSuggestion("Set the 'gemini_model' input, e.g. gemini-2.5-flash")

	ErrInvalidMaxTokens = NewAppError(TypeConfiguration, "max_output_tokens must be a positive integer", nil).
				WithSuggestion("Set the 'max_output_tokens' input to a value like 700")
)

// Event errors
var (
	ErrEventPathMissing = NewAppError(TypeEvent, "trigger payload path is missing", nil).
				WithSuggestion("GITHUB_EVENT_PATH is set automatically on GitHub runners; set it manually for local runs")

	ErrEventPayloadInvalid = NewAppError(TypeEvent, "trigger payload could not be decoded", nil)

	ErrEventIncomplete = NewAppError(TypeEvent, "trigger payload is missing repository or pull request fields", nil).
				WithSuggestion("Run the action on pull_request events; other events carry no PR identity")
)

// VCS errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Use ${{ secrets.GITHUB_TOKEN }} or a PAT with the 'repo' scope")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Grant the workflow 'pull-requests: write' permission")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a token with higher limits")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "repository or pull request not found", nil).
				WithSuggestion("Check the repository name and that the token can see the repository")

	ErrDiffUnavailable = NewAppError(TypeVCS, "pull request diff could not be fetched", nil)

	ErrPublishReview = NewAppError(TypeVCS, "failed to publish the review", nil).
				WithSuggestion("Check that the commented lines still exist on the PR head")
)

// AI errors
var (
	ErrGeminiAPIKeyInvalid = NewAppError(TypeAI, "Gemini API key is invalid", nil).
				WithSuggestion("Get a valid API key at: https://aistudio.google.com/app/apikey")

	ErrGeminiQuotaExceeded = NewAppError(TypeAI, "Gemini API quota exceeded", nil).
				WithSuggestion("Wait for quota to reset, lower max_retries, or upgrade your Gemini plan")

	ErrAIGeneration = NewAppError(TypeAI, "AI generation failed", nil).
			WithSuggestion("Try again or check your API key configuration")

	ErrInvalidAIOutput = NewAppError(TypeAI, "invalid AI output format", nil).
				WithSuggestion("This is likely a temporary issue, please try again")
)
