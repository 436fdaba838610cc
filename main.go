package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lintlens/internal/commands"
	"github.com/colonyops/lintlens/internal/core/config"
	"github.com/colonyops/lintlens/internal/core/logging"
	"github.com/colonyops/lintlens/internal/core/styles"
	"github.com/colonyops/lintlens/internal/profiler"
	"github.com/colonyops/lintlens/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		pprofAddr string
		pprof     *profiler.Server
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "lintlens",
		Usage:     "Review add-on files with analyzer annotations",
		UsageText: "lintlens [global options] command [command options]",
		Description: `lintlens shows one file of a submitted add-on version, or a unified diff of
it, with syntax highlighting and the analyzer's messages attached to the
lines they refer to.

Files and reports can be read from disk (view, diff) or from the review
API (fetch). When stdout is not a terminal, or --plain is set, the
annotated file is printed once instead of opening the viewer.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LINTLENS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, or - for stderr (defaults to the user state directory)",
				Sources:     cli.EnvVars("LINTLENS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LINTLENS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print the annotated file instead of opening the viewer",
				Sources:     cli.EnvVars("LINTLENS_PLAIN"),
				Destination: &flags.Plain,
			},
			&cli.StringFlag{
				Name:        "pprof-addr",
				Usage:       "serve pprof handlers on this address, e.g. localhost:6060",
				Sources:     cli.EnvVars("LINTLENS_PPROF_ADDR"),
				Destination: &pprofAddr,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the viewer owns stdout
			logFile := flags.LogFile
			if logFile == "" {
				logFile = commands.DefaultLogFile()
			}

			var (
				logger zerolog.Logger
				err    error
			)
			if logFile == "-" {
				logger, err = logutils.NewConsole(flags.LogLevel, os.Stderr)
			} else {
				logger, logCloser, err = logutils.New(flags.LogLevel, logFile)
			}
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if !styles.SetThemeByName(cfg.Viewer.Theme) {
				log.Warn().Str("theme", cfg.Viewer.Theme).Msg("unknown theme, using default")
			}

			if pprofAddr != "" {
				pprof = profiler.New(pprofAddr)
				if err := pprof.Start(ctx); err != nil {
					return ctx, fmt.Errorf("start profiler: %w", err)
				}
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if pprof != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := pprof.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("failed to stop profiler")
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewViewCmd(flags).Register(app)
	app = commands.NewDiffCmd(flags).Register(app)
	app = commands.NewFetchCmd(flags).Register(app)
	app = commands.NewReportCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
