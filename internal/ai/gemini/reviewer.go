package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/thomas-vilte/matereview/internal/ai"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"google.golang.org/genai"
)

var (
	_ ai.HunkReviewer  = (*GeminiReviewer)(nil)
	_ ai.FixSuggester  = (*GeminiReviewer)(nil)
	_ ai.UsageReporter = (*GeminiReviewer)(nil)
)

// GeminiReviewer critiques diff hunks and proposes fixes through the Gemini
// API. One instance serves a whole run and accumulates token usage across
// its calls; hunks are processed sequentially, so no locking is involved.
type GeminiReviewer struct {
	client *genai.Client
	model  string
	cfg    *config.Config
	usage  models.TokenUsage
}

// reviewSchema mirrors the JSON contract of the review prompt so structured
// output mode can enforce it server side.
var reviewSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"reviews"},
	Properties: map[string]*genai.Schema{
		"reviews": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"lineNumber", "reviewComment"},
				Properties: map[string]*genai.Schema{
					"lineNumber":    {Type: genai.TypeInteger},
					"reviewComment": {Type: genai.TypeString},
				},
			},
		},
	},
}

type reviewResponseJSON struct {
	Reviews []reviewItemJSON `json:"reviews"`
}

type reviewItemJSON struct {
	LineNumber    int    `json:"lineNumber"`
	ReviewComment string `json:"reviewComment"`
}

func NewGeminiReviewer(ctx context.Context, cfg *config.Config) (*GeminiReviewer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, domainErrors.ErrGeminiAPIKeyInvalid.WithError(err)
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	return &GeminiReviewer{
		client: client,
		model:  cfg.Model,
		cfg:    cfg,
		usage:  models.TokenUsage{Model: cfg.Model},
	}, nil
}

// ReviewHunk asks the model to critique one hunk and returns the findings
// that survive validation. Findings pointing at lines the hunk does not
// contain are dropped, not errors.
func (g *GeminiReviewer) ReviewHunk(ctx context.Context, pr *models.PullRequestContext, filePath string, hunk models.DiffHunk) ([]models.Finding, error) {
	log := logger.FromContext(ctx)

	data := ai.PromptData{
		FilePath:      filePath,
		PRTitle:       pr.Title,
		PRDescription: pr.Description,
		HunkContent:   hunk.Content,
		LineListing:   ai.BuildLineListing(hunk),
	}
	prompt, err := ai.RenderPrompt("reviewHunk", ai.GetReviewPromptTemplate(g.cfg.CommentLanguage), data)
	if err != nil {
		return nil, domainErrors.ErrAIGeneration.WithError(err)
	}

	log.Debug("calling gemini for hunk review",
		"file", filePath,
		"prompt_length", len(prompt))

	responseText, err := g.generate(ctx, prompt, config.SupportsStructuredOutput(g.model), reviewSchema)
	if err != nil {
		return nil, err
	}
	if responseText == "" {
		return nil, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty response from AI").
			WithContext("file", filePath)
	}

	return g.parseFindings(ctx, responseText, filePath, hunk)
}

// SuggestFix asks the model for the corrected code behind one finding. The
// answer is plain code; a stray markdown fence is stripped.
func (g *GeminiReviewer) SuggestFix(ctx context.Context, filePath string, hunk models.DiffHunk, finding models.Finding) (string, error) {
	log := logger.FromContext(ctx)

	data := ai.PromptData{
		FilePath:      filePath,
		HunkContent:   hunk.Content,
		LineNumber:    finding.LineNumber,
		ReviewComment: finding.Comment,
	}
	prompt, err := ai.RenderPrompt("suggestFix", ai.GetFixPromptTemplate(g.cfg.CommentLanguage), data)
	if err != nil {
		return "", domainErrors.ErrAIGeneration.WithError(err)
	}

	log.Debug("calling gemini for fix suggestion",
		"file", filePath,
		"line", finding.LineNumber)

	responseText, err := g.generate(ctx, prompt, false, nil)
	if err != nil {
		return "", err
	}

	fix := stripCodeFences(responseText)
	if fix == "" {
		return "", domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty fix from AI").
			WithContext("file", filePath)
	}
	return fix, nil
}

// Usage returns the token usage accumulated across all calls of this run.
func (g *GeminiReviewer) Usage() models.TokenUsage {
	return g.usage
}

func (g *GeminiReviewer) generate(ctx context.Context, prompt string, jsonMode bool, schema *genai.Schema) (string, error) {
	log := logger.FromContext(ctx)
	genConfig := getGenerateConfig(jsonMode, int32(g.cfg.MaxOutputTokens), schema)

	var text string
	err := ai.RetryWithBackoff(ctx, g.cfg.MaxRetries, func() error {
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
		defer cancel()

		resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), genConfig)
		if err != nil {
			// The per-call deadline is transient; the parent being done
			// means the whole run is shutting down.
			if callCtx.Err() != nil && ctx.Err() == nil {
				log.Warn("gemini call timed out",
					"model", g.model,
					"timeout", g.cfg.RequestTimeout)
				return context.DeadlineExceeded
			}
			log.Error("gemini API call failed",
				"error", err,
				"model", g.model)
			return classifyGenerateError(err)
		}

		g.usage.Merge(extractUsage(resp))
		text = formatResponse(resp)
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (g *GeminiReviewer) parseFindings(ctx context.Context, responseText, filePath string, hunk models.DiffHunk) ([]models.Finding, error) {
	log := logger.FromContext(ctx)

	responseText = ExtractJSON(responseText)
	var parsed reviewResponseJSON
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		return nil, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "failed to parse JSON").
			WithContext("preview", preview(responseText)).
			WithError(err)
	}
	if parsed.Reviews == nil {
		return nil, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "missing reviews array").
			WithContext("preview", preview(responseText))
	}

	validLines := make(map[int]struct{}, len(hunk.Changes))
	for _, change := range hunk.Changes {
		if change.Kind == models.LineDeleted {
			continue
		}
		validLines[change.NewLine] = struct{}{}
	}

	findings := make([]models.Finding, 0, len(parsed.Reviews))
	for _, item := range parsed.Reviews {
		if strings.TrimSpace(item.ReviewComment) == "" {
			log.Warn("dropping finding with empty comment",
				"file", filePath,
				"line", item.LineNumber)
			continue
		}
		if _, ok := validLines[item.LineNumber]; !ok {
			log.Warn("dropping finding outside the hunk",
				"file", filePath,
				"line", item.LineNumber)
			continue
		}
		findings = append(findings, models.Finding{
			LineNumber: item.LineNumber,
			Comment:    strings.TrimSpace(item.ReviewComment),
		})
	}
	return findings, nil
}

func classifyGenerateError(err error) error {
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "resource exhausted") {
		return domainErrors.ErrGeminiQuotaExceeded.WithError(err)
	}

	if strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "api key") {
		return domainErrors.ErrGeminiAPIKeyInvalid.WithError(err)
	}

	return domainErrors.ErrAIGeneration.WithError(err)
}

func preview(text string) string {
	if len(text) > 500 {
		return text[:500] + "..."
	}
	return text
}
