package version

import (
	"context"
	"fmt"

	cfg "github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	appversion "github.com/thomas-vilte/matereview/internal/version"
	"github.com/urfave/cli/v3"
)

type VersionCommand struct{}

func NewVersionCommand() *VersionCommand {
	return &VersionCommand{}
}

func (c *VersionCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Usage:   t.GetMessage("version_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("matereview %s\n", appversion.FullVersion())
			return nil
		},
	}
}
