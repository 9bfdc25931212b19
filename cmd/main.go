package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/matereview/internal/ai/gemini"
	reviewcmd "github.com/thomas-vilte/matereview/internal/commands/review"
	versioncmd "github.com/thomas-vilte/matereview/internal/commands/version"
	cfg "github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/review"
	"github.com/thomas-vilte/matereview/internal/vcs/github"
	"github.com/thomas-vilte/matereview/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the action: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	appCfg := &cfg.Config{}

	translations, err := i18n.NewTranslations(cfg.DefaultCommentLanguage)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	var (
		excludeRaw string
		debug      bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "token for the GitHub API, provided by the workflow",
			Sources:     cli.EnvVars("INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"),
			Destination: &appCfg.GitHubToken,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "API key for the Gemini API",
			Sources:     cli.EnvVars("INPUT_GEMINI_API_KEY", "GEMINI_API_KEY"),
			Destination: &appCfg.GeminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Gemini model used for the review",
			Sources:     cli.EnvVars("INPUT_GEMINI_MODEL"),
			Destination: &appCfg.Model,
		},
		&cli.IntFlag{
			Name:        "max-output-tokens",
			Usage:       "token budget for each model response",
			Sources:     cli.EnvVars("INPUT_MAX_OUTPUT_TOKENS"),
			Destination: &appCfg.MaxOutputTokens,
		},
		&cli.StringFlag{
			Name:        "exclude-patterns",
			Usage:       "comma separated glob patterns of paths to skip",
			Sources:     cli.EnvVars("INPUT_EXCLUDE_PATTERNS"),
			Destination: &excludeRaw,
		},
		&cli.StringFlag{
			Name:        "comment-language",
			Usage:       "language of the published comments (en, es)",
			Value:       cfg.DefaultCommentLanguage,
			Sources:     cli.EnvVars("INPUT_COMMENT_LANGUAGE"),
			Destination: &appCfg.CommentLanguage,
		},
		&cli.BoolFlag{
			Name:        "suggest-fixes",
			Usage:       "ask the model for a fix suggestion on every finding",
			Value:       cfg.DefaultSuggestFixes,
			Sources:     cli.EnvVars("INPUT_SUGGEST_FIXES"),
			Destination: &appCfg.SuggestFixes,
		},
		&cli.IntFlag{
			Name:        "max-retries",
			Usage:       "extra attempts for retryable model errors",
			Value:       cfg.DefaultMaxRetries,
			Sources:     cli.EnvVars("INPUT_MAX_RETRIES"),
			Destination: &appCfg.MaxRetries,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "per request timeout for model calls",
			Value:       cfg.DefaultRequestTimeout,
			Sources:     cli.EnvVars("INPUT_REQUEST_TIMEOUT"),
			Destination: &appCfg.RequestTimeout,
		},
		&cli.StringFlag{
			Name:        "event-path",
			Usage:       "path of the JSON payload that triggered the workflow",
			Sources:     cli.EnvVars("GITHUB_EVENT_PATH"),
			Destination: &appCfg.EventPath,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"verbose"},
			Usage:       "log at debug level",
			Sources:     cli.EnvVars("INPUT_DEBUG", "INPUT_VERBOSE", "RUNNER_DEBUG"),
			Destination: &debug,
		},
	}

	reviewProvider := func(ctx context.Context, pr *models.PullRequestContext) (reviewcmd.ReviewService, error) {
		if err := appCfg.Validate(); err != nil {
			return nil, err
		}

		reviewer, err := gemini.NewGeminiReviewer(ctx, appCfg)
		if err != nil {
			return nil, err
		}

		return review.NewService(
			review.WithConfig(appCfg),
			review.WithVCSClient(github.NewGitHubClient(pr.Owner, pr.Repo, appCfg.GitHubToken)),
			review.WithReviewer(reviewer),
			review.WithFixSuggester(reviewer),
			review.WithUsageReporter(reviewer),
			review.WithTranslations(translations),
		), nil
	}

	return &cli.Command{
		Name:        "matereview",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags:       flags,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(debug, false)

			appCfg.CommentLanguage = cfg.NormalizeLanguage(appCfg.CommentLanguage)
			appCfg.ExcludePatterns = cfg.ParseExcludePatterns(excludeRaw)
			if err := translations.SetLanguage(appCfg.CommentLanguage); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			reviewcmd.NewReviewCommand(reviewProvider).CreateCommand(translations, appCfg),
			versioncmd.NewVersionCommand().CreateCommand(translations, appCfg),
		},
	}, nil
}
