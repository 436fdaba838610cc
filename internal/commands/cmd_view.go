package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lintlens/internal/api"
	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/version"
	"github.com/colonyops/lintlens/internal/tui/viewer"
)

type ViewCmd struct {
	flags *Flags

	// flags
	root     string
	file     string
	report   string
	mime     string
	anchor   string
	language string
}

// NewViewCmd creates a new view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Show a file with its analyzer messages",
		UsageText: "lintlens view --file <path> [--report <path>] [--anchor #L9]",
		Description: `Renders a file with syntax highlighting and attaches each analyzer message
to the line it points at. File level messages are shown above the content.

--file is resolved against --root, and the resulting relative path is used
to look up messages in the report.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "root",
				Usage:       "directory the file path is relative to",
				Destination: &cmd.root,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "file to show",
				Required:    true,
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "report",
				Aliases:     []string{"r"},
				Usage:       "analyzer report (JSON)",
				Sources:     cli.EnvVars("LINTLENS_REPORT"),
				Destination: &cmd.report,
			},
			&cli.StringFlag{
				Name:        "mime",
				Usage:       "override the detected MIME type",
				Destination: &cmd.mime,
			},
			&cli.StringFlag{
				Name:        "anchor",
				Aliases:     []string{"a"},
				Usage:       "line to select, e.g. #L9",
				Destination: &cmd.anchor,
			},
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "force the highlighting language",
				Destination: &cmd.language,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	local := api.NewLocal(cmd.root, cmd.report)
	resolver := highlight.NewResolver(cfg.Languages)

	if cmd.flags.Interactive() {
		v, err := cmd.load(ctx, local)
		if err != nil {
			return err
		}

		return runViewer(ctx, viewer.Options{
			Mode:     viewer.ModeContent,
			Version:  v,
			Language: cmd.language,
			Resolver: resolver,
			Anchor:   cmd.anchor,
			ViewType: codeview.ParseViewType(cfg.Viewer.ViewType),
			Source:   local,
			Bus:      newBus(false, nil),
			ToastTTL: cfg.Viewer.ToastTTL,
		})
	}

	store := linter.NewStore()
	bus := newBus(true, c.Root().ErrWriter)
	target := version.Version{ID: api.LocalVersionID, ReportLocation: cmd.report}

	var v version.Version
	err := loadPlain(ctx, store, bus, local, target, func(ctx context.Context) error {
		var err error
		v, err = cmd.load(ctx, local)
		return err
	})
	if err != nil {
		return err
	}

	doc := contentDocument(v, store.State(v.ID), resolver, cmd.language, cmd.anchor)
	return printDocument(c.Root().Writer, doc)
}

func (cmd *ViewCmd) load(ctx context.Context, local *api.Local) (version.Version, error) {
	v, err := local.Version(ctx, cmd.file)
	if err != nil {
		return version.Version{}, fmt.Errorf("load file: %w", err)
	}
	if cmd.mime != "" {
		v.File.MimeType = cmd.mime
	}
	return v, nil
}
