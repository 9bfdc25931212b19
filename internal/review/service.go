package review

import (
	"context"
	"strings"
	"time"

	"github.com/thomas-vilte/matereview/internal/ai"
	"github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/diff"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/vcs"
)

// Service runs the whole review pipeline for one trigger event: fetch diff,
// parse, filter, review hunks, score, resolve previous comments, publish.
type Service struct {
	cfg          *config.Config
	vcsClient    vcs.VCSClient
	reviewer     ai.HunkReviewer
	fixSuggester ai.FixSuggester
	usage        ai.UsageReporter
	translations *i18n.Translations
	assembler    *Assembler
	weights      Weights
}

type Option func(*Service)

func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

func WithVCSClient(client vcs.VCSClient) Option {
	return func(s *Service) {
		s.vcsClient = client
	}
}

func WithReviewer(reviewer ai.HunkReviewer) Option {
	return func(s *Service) {
		s.reviewer = reviewer
	}
}

func WithFixSuggester(suggester ai.FixSuggester) Option {
	return func(s *Service) {
		s.fixSuggester = suggester
	}
}

func WithUsageReporter(usage ai.UsageReporter) Option {
	return func(s *Service) {
		s.usage = usage
	}
}

func WithTranslations(translations *i18n.Translations) Option {
	return func(s *Service) {
		s.translations = translations
	}
}

// WithWeights replaces the score policy.
func WithWeights(weights Weights) Option {
	return func(s *Service) {
		s.weights = weights
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		weights: DefaultWeights,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.translations != nil {
		s.assembler = NewAssembler(s.translations)
	}
	return s
}

// Run executes the pipeline for a PR whose trigger action was already
// accepted. It returns a report for the terminal; a PR without a fetchable
// diff is a normal empty run, not an error.
func (s *Service) Run(ctx context.Context, pr *models.PullRequestContext) (*models.RunReport, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	if s.cfg == nil || s.vcsClient == nil || s.reviewer == nil || s.translations == nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeInternal, "review service is not fully configured", nil)
	}

	log.Info("starting review pipeline",
		"owner", pr.Owner,
		"repo", pr.Repo,
		"pr_number", pr.Number,
		"action", string(pr.Action))

	prCtx := *pr
	if details, err := s.vcsClient.GetPR(ctx, prCtx.Number); err != nil {
		// Stale payload data is still usable; keep going with what we have.
		log.Warn("could not refresh PR details, using the trigger payload",
			"error", err,
			"pr_number", prCtx.Number)
	} else {
		prCtx.Title = details.Title
		prCtx.Description = details.Description
	}

	diffText, err := s.vcsClient.GetDiff(ctx, prCtx.Number)
	if err != nil {
		log.Warn("no diff found for this pull request, nothing to review",
			"error", err,
			"pr_number", prCtx.Number)
		return &models.RunReport{}, nil
	}
	if strings.TrimSpace(diffText) == "" {
		log.Info("empty diff, nothing to review", "pr_number", prCtx.Number)
		return &models.RunReport{}, nil
	}

	files, err := diff.Parse(diffText)
	if err != nil {
		log.Error("failed to parse the PR diff",
			"error", err,
			"pr_number", prCtx.Number,
			"diff_size", len(diffText))
		return nil, err
	}

	stats := diff.Stats(files)
	reviewable := diff.Filter(files, s.cfg.ExcludePatterns)

	log.Debug("diff parsed",
		"files_total", len(files),
		"files_reviewable", len(reviewable),
		"lines_added", stats.LinesAdded,
		"lines_deleted", stats.LinesDeleted,
		"lines_changed", stats.LinesChanged)

	lineComments, findingsCount, hunksReviewed := s.reviewHunks(ctx, &prCtx, reviewable)

	score := Score(stats, s.weights)
	summaryBody := s.assembler.SummaryBody(stats, score, findingsCount)
	comments := s.assembler.Assemble(lineComments, summaryBody)

	s.resolveExistingComments(ctx, prCtx.Number)

	if err := s.vcsClient.CreateReview(ctx, prCtx.Number, comments); err != nil {
		log.Error("failed to publish the review",
			"error", err,
			"pr_number", prCtx.Number,
			"comments_count", len(lineComments))
		return nil, err
	}

	for _, comment := range comments {
		if !comment.IsSummary() {
			continue
		}
		if err := s.vcsClient.CreatePRComment(ctx, prCtx.Number, comment.Body); err != nil {
			log.Error("failed to post the summary comment",
				"error", err,
				"pr_number", prCtx.Number)
			return nil, err
		}
	}

	fileReports := make([]models.FileReport, 0, len(reviewable))
	for _, file := range reviewable {
		added, deleted := diff.RawCounts(file)
		fileReports = append(fileReports, models.FileReport{
			Path:    file.Path,
			Added:   added,
			Deleted: deleted,
		})
	}

	report := &models.RunReport{
		FilesReviewed:  len(reviewable),
		HunksReviewed:  hunksReviewed,
		FindingsCount:  findingsCount,
		CommentsPosted: len(lineComments) + 1,
		Score:          score,
		Files:          fileReports,
	}
	if s.usage != nil {
		usage := s.usage.Usage()
		report.Usage = &usage
	}

	log.Info("review pipeline finished",
		"pr_number", prCtx.Number,
		"files_count", report.FilesReviewed,
		"hunks_count", report.HunksReviewed,
		"findings_count", report.FindingsCount,
		"comments_count", report.CommentsPosted,
		"duration_ms", time.Since(start).Milliseconds())

	return report, nil
}

// reviewHunks walks the reviewable files in diff order, one hunk at a time.
// A failed hunk contributes zero findings and never stops the walk; a failed
// fix suggestion leaves the finding without a fix.
func (s *Service) reviewHunks(ctx context.Context, pr *models.PullRequestContext, files []models.DiffFile) ([]models.ReviewComment, int, int) {
	log := logger.FromContext(ctx)

	var lineComments []models.ReviewComment
	findingsCount := 0
	hunksReviewed := 0

	for _, file := range files {
		for _, hunk := range file.Hunks {
			hunksReviewed++

			findings, err := s.reviewer.ReviewHunk(ctx, pr, file.Path, hunk)
			if err != nil {
				log.Warn("hunk review failed, skipping hunk",
					"error", err,
					"file", file.Path,
					"hunk", hunk.Header)
				continue
			}

			for _, finding := range findings {
				if s.cfg.SuggestFixes && s.fixSuggester != nil {
					fix, err := s.fixSuggester.SuggestFix(ctx, file.Path, hunk, finding)
					if err != nil {
						log.Warn("fix suggestion failed, keeping the finding without one",
							"error", err,
							"file", file.Path,
							"line", finding.LineNumber)
					} else {
						finding.SuggestedFix = fix
					}
				}

				body := s.assembler.CommentBody(file.Path, finding, s.cfg.SuggestFixes)
				lineComments = append(lineComments, models.ReviewComment{
					Body: body,
					Path: file.Path,
					Line: finding.LineNumber,
				})
				findingsCount++
			}
		}
	}

	return lineComments, findingsCount, hunksReviewed
}

// resolveExistingComments appends the localized resolved marker to every
// review comment already on the PR. Failures are logged per comment and do
// not stop the loop.
func (s *Service) resolveExistingComments(ctx context.Context, prNumber int) {
	log := logger.FromContext(ctx)

	existing, err := s.vcsClient.ListReviewComments(ctx, prNumber)
	if err != nil {
		log.Warn("could not list existing review comments",
			"error", err,
			"pr_number", prNumber)
		return
	}
	if len(existing) == 0 {
		return
	}

	note := s.translations.GetMessage("resolved_note", 0, nil)
	resolved := 0
	for _, comment := range existing {
		if strings.Contains(comment.Body, note) {
			continue
		}
		if err := s.vcsClient.UpdateReviewComment(ctx, comment.ID, comment.Body+"\n\n"+note); err != nil {
			log.Warn("could not mark review comment as resolved",
				"error", err,
				"comment_id", comment.ID)
			continue
		}
		resolved++
	}

	if resolved > 0 {
		log.Debug("marked previous review comments as resolved",
			"count", resolved,
			"pr_number", prNumber)
	}
}
