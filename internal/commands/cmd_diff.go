package commands

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lintlens/internal/api"
	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/version"
	"github.com/colonyops/lintlens/internal/tui/viewer"
	"github.com/colonyops/lintlens/pkg/iojson"
)

type DiffCmd struct {
	flags *Flags

	// flags
	diffPath string
	report   string
	path     string
	anchor   string
	language string
	split    bool
}

// NewDiffCmd creates a new diff command
func NewDiffCmd(flags *Flags) *DiffCmd {
	return &DiffCmd{flags: flags}
}

// Register adds the diff command to the application
func (cmd *DiffCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "diff",
		Usage:     "Show a unified diff with its analyzer messages",
		UsageText: "lintlens diff [--diff <path>] [--report <path>] [--path <glob>] [--split]",
		Description: `Renders every file of a unified diff as its own section with insert and
delete counts. Analyzer messages attach to the change that shows their line
on the new side; deleted lines never carry messages.

The diff is read from stdin when --diff is omitted or "-".`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "diff",
				Aliases:     []string{"d"},
				Usage:       "unified diff to show (stdin when omitted)",
				Destination: &cmd.diffPath,
			},
			&cli.StringFlag{
				Name:        "report",
				Aliases:     []string{"r"},
				Usage:       "analyzer report (JSON)",
				Sources:     cli.EnvVars("LINTLENS_REPORT"),
				Destination: &cmd.report,
			},
			&cli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "only show files matching this glob",
				Destination: &cmd.path,
			},
			&cli.StringFlag{
				Name:        "anchor",
				Aliases:     []string{"a"},
				Usage:       "change to select, e.g. I12 or F1-D3",
				Destination: &cmd.anchor,
			},
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "highlighting language for files without a known one",
				Destination: &cmd.language,
			},
			&cli.BoolFlag{
				Name:        "split",
				Usage:       "side by side layout",
				Destination: &cmd.split,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DiffCmd) include() (func(string) bool, error) {
	if cmd.path == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(cmd.path) {
		return nil, fmt.Errorf("invalid --path pattern %q", cmd.path)
	}
	pattern := cmd.path
	return func(p string) bool {
		ok, err := doublestar.Match(pattern, p)
		return err == nil && ok
	}, nil
}

func (cmd *DiffCmd) viewType() codeview.ViewType {
	if cmd.split {
		return codeview.ViewSplit
	}
	return codeview.ParseViewType(cmd.flags.Config.Viewer.ViewType)
}

func (cmd *DiffCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	resolver := highlight.NewResolver(cfg.Languages)
	local := api.NewLocal("", cmd.report)
	target := version.Version{ID: api.LocalVersionID, ReportLocation: cmd.report}

	include, err := cmd.include()
	if err != nil {
		return err
	}

	if cmd.flags.Interactive() && cmd.diffPath != "" && cmd.diffPath != "-" {
		text, err := iojson.ReadAll(cmd.diffPath)
		if err != nil {
			return fmt.Errorf("read diff: %w", err)
		}

		return runViewer(ctx, viewer.Options{
			Mode:     viewer.ModeDiff,
			Version:  target,
			DiffText: text,
			Language: cmd.language,
			Resolver: resolver,
			Include:  include,
			Anchor:   cmd.anchor,
			ViewType: cmd.viewType(),
			Source:   local,
			Bus:      newBus(false, nil),
			ToastTTL: cfg.Viewer.ToastTTL,
		})
	}

	store := linter.NewStore()
	bus := newBus(true, c.Root().ErrWriter)

	var text string
	err = loadPlain(ctx, store, bus, local, target, func(context.Context) error {
		var err error
		text, err = iojson.ReadAll(cmd.diffPath)
		if err != nil {
			return fmt.Errorf("read diff: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	state := store.State(target.ID)
	view, err := codeview.RenderDiff(codeview.DiffInput{
		Text:     text,
		Language: cmd.language,
		Resolve:  func(p string) string { return resolver.Resolve(p, "") },
		Include:  include,
		Index:    state.Index,
		Anchor:   cmd.anchor,
		ViewType: cmd.viewType(),
	})
	if err != nil {
		return err
	}

	doc := viewer.RenderDiff(view, state, terminalWidth(), viewer.NewMarkdown(true))
	return printDocument(c.Root().Writer, doc)
}
