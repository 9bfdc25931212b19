package review

import (
	"context"
	"fmt"
	"time"

	cfg "github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/event"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/ui"
	"github.com/urfave/cli/v3"
)

// ReviewService is a minimal interface for testing purposes
type ReviewService interface {
	Run(ctx context.Context, pr *models.PullRequestContext) (*models.RunReport, error)
}

// ReviewServiceProvider is a function that returns a ReviewService on demand.
// It receives the PR coordinates because the VCS client is scoped to one
// repository.
type ReviewServiceProvider func(ctx context.Context, pr *models.PullRequestContext) (ReviewService, error)

type ReviewCommand struct {
	provider ReviewServiceProvider
}

func NewReviewCommand(provider ReviewServiceProvider) *ReviewCommand {
	return &ReviewCommand{
		provider: provider,
	}
}

func (c *ReviewCommand) CreateCommand(t *i18n.Translations, appCfg *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "review",
		Aliases: []string{"r"},
		Usage:   t.GetMessage("review_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()

			prCtx, err := event.Read(appCfg.EventPath)
			if err != nil {
				log.Error("failed to read the trigger event",
					"error", err,
					"event_path", appCfg.EventPath)
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("event_read_error", 0, nil)+": %w", err)
			}

			log.Info("executing review command",
				"owner", prCtx.Owner,
				"repo", prCtx.Repo,
				"pr_number", prCtx.Number,
				"action", string(prCtx.Action))

			if !prCtx.Action.Supported() {
				log.Info("event action does not trigger a review, ending the run",
					"action", string(prCtx.Action))
				ui.PrintInfo(t.GetMessage("unsupported_event", 0, map[string]interface{}{
					"Action": string(prCtx.Action),
				}))
				return nil
			}

			ui.PrintSectionBanner(t.GetMessage("review_running", 0, map[string]interface{}{
				"Number": prCtx.Number,
			}))

			service, err := c.provider(ctx, prCtx)
			if err != nil {
				log.Error("failed to create review service",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("service_creation_error", 0, nil)+": %w", err)
			}

			report, err := service.Run(ctx, prCtx)
			if err != nil {
				log.Error("review run failed",
					"error", err,
					"pr_number", prCtx.Number,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("review_error", 0, nil)+": %w", err)
			}

			if report.CommentsPosted == 0 {
				log.Info("nothing was published for this pull request",
					"pr_number", prCtx.Number,
					"duration_ms", time.Since(start).Milliseconds())
				ui.PrintInfo(t.GetMessage("nothing_to_review", 0, nil))
				return nil
			}

			log.Info("review published",
				"pr_number", prCtx.Number,
				"comments_count", report.CommentsPosted,
				"findings_count", report.FindingsCount,
				"duration_ms", time.Since(start).Milliseconds())

			ui.PrintDuration(t.GetMessage("review_published", report.CommentsPosted, map[string]interface{}{
				"Count": report.CommentsPosted,
			}), time.Since(start))
			ui.ShowRunReport(report, t)

			return nil
		},
	}
}
