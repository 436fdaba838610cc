package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lintlens/internal/api"
	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/styles"
	"github.com/colonyops/lintlens/internal/core/version"
	"github.com/colonyops/lintlens/internal/tui/viewer"
)

type FetchCmd struct {
	flags *Flags

	// flags
	addonID   int
	versionID int
	path      string
	anchor    string
}

// NewFetchCmd creates a new fetch command
func NewFetchCmd(flags *Flags) *FetchCmd {
	return &FetchCmd{flags: flags}
}

// Register adds the fetch command to the application
func (cmd *FetchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fetch",
		Usage:     "Show a file of a submitted version from the review API",
		UsageText: "lintlens fetch --addon <id> --version <id> [--path <file>]",
		Description: `Loads a file of a submitted add-on version and its analyzer report from the
review API configured under api.base_url. The bearer token is read from the
environment variable named by api.token_env.

Without --path an interactive picker lists the files of the version when
stdin is a terminal; otherwise the server's default file is shown.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "addon",
				Usage:       "add-on id",
				Sources:     cli.EnvVars("LINTLENS_ADDON"),
				Required:    true,
				Destination: &cmd.addonID,
			},
			&cli.IntFlag{
				Name:        "version",
				Usage:       "version id",
				Required:    true,
				Destination: &cmd.versionID,
			},
			&cli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "file inside the version",
				Destination: &cmd.path,
			},
			&cli.StringFlag{
				Name:        "anchor",
				Aliases:     []string{"a"},
				Usage:       "line to select, e.g. #L9",
				Destination: &cmd.anchor,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *FetchCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	client := cmd.flags.Client()
	remote := api.NewRemote(client, cmd.addonID)
	resolver := highlight.NewResolver(cfg.Languages)
	location := client.ValidationLocation(cmd.addonID, cmd.versionID)

	path := cmd.path
	if path == "" && cmd.flags.Interactive() {
		v, err := cmd.load(ctx, remote, "", location)
		if err != nil {
			return err
		}
		path, err = pickPath(v)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if cmd.flags.Interactive() {
		v, err := cmd.load(ctx, remote, path, location)
		if err != nil {
			return err
		}

		return runViewer(ctx, viewer.Options{
			Mode:     viewer.ModeContent,
			Version:  v,
			Resolver: resolver,
			Anchor:   cmd.anchor,
			ViewType: codeview.ParseViewType(cfg.Viewer.ViewType),
			Source:   remote,
			Bus:      newBus(false, nil),
			ToastTTL: cfg.Viewer.ToastTTL,
		})
	}

	store := linter.NewStore()
	bus := newBus(true, c.Root().ErrWriter)
	target := version.Version{ID: cmd.versionID, ReportLocation: location}

	var v version.Version
	err := loadPlain(ctx, store, bus, remote, target, func(ctx context.Context) error {
		var err error
		v, err = cmd.load(ctx, remote, path, location)
		return err
	})
	if err != nil {
		return err
	}

	doc := contentDocument(v, store.State(v.ID), resolver, "", cmd.anchor)
	return printDocument(c.Root().Writer, doc)
}

func (cmd *FetchCmd) load(ctx context.Context, remote *api.Remote, path, location string) (version.Version, error) {
	v, err := remote.LoadVersion(ctx, cmd.versionID, path)
	if err != nil {
		return version.Version{}, fmt.Errorf("load version %d: %w", cmd.versionID, err)
	}
	if v.ID == 0 {
		v.ID = cmd.versionID
	}
	if v.ReportLocation == "" {
		v.ReportLocation = location
	}
	return v, nil
}

// pickPath asks for one of the files of v. The server's selection is
// preselected.
func pickPath(v version.Version) (string, error) {
	paths := v.Paths()
	if len(paths) == 0 {
		return v.SelectedPath, nil
	}

	options := make([]huh.Option[string], 0, len(paths))
	for _, p := range paths {
		options = append(options, huh.NewOption(styles.IconForPath(p)+p, p))
	}

	selected := v.SelectedPath
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("File").
				Description(fmt.Sprintf("Version %s has %d files", v.Number, len(paths))).
				Options(options...).
				Filtering(true).
				Height(15).
				Value(&selected),
		),
	).WithTheme(styles.FormTheme()).Run()

	return selected, err
}
