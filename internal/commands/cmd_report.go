package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/pkg/iojson"
)

type ReportCmd struct {
	flags *Flags

	// flags
	report     string
	jsonOutput bool
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Summarize an analyzer report per file",
		UsageText: "lintlens report [--report <path>] [--json]",
		Description: `Prints how many messages each file of an analyzer report carries, split
into file level (global) messages and messages attached to lines.

The report is read from stdin when --report is omitted or "-".`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "report",
				Aliases:     []string{"r"},
				Usage:       "analyzer report (JSON)",
				Sources:     cli.EnvVars("LINTLENS_REPORT"),
				Destination: &cmd.report,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type pathCounts struct {
	Path     string `json:"path"`
	Global   int    `json:"global"`
	Lines    int    `json:"lines"`
	Messages int    `json:"messages"`
}

type reportSummary struct {
	Files    []pathCounts `json:"files"`
	Total    int          `json:"total"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Notices  int          `json:"notices"`
}

func summarize(report linter.Report) reportSummary {
	idx := report.Index()
	out := reportSummary{Files: []pathCounts{}, Total: idx.Count()}

	for _, path := range idx.Paths() {
		pm := idx.ForPath(path)
		lines := 0
		for _, msgs := range pm.ByLine {
			lines += len(msgs)
		}
		out.Files = append(out.Files, pathCounts{
			Path:     path,
			Global:   len(pm.Global),
			Lines:    lines,
			Messages: pm.Len(),
		})
	}

	for _, m := range report.Messages {
		switch m.Type {
		case linter.SeverityError:
			out.Errors++
		case linter.SeverityWarning:
			out.Warnings++
		default:
			out.Notices++
		}
	}

	return out
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	r, err := iojson.Open(cmd.report)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer func() { _ = r.Close() }()

	report, err := linter.ParseReport(r)
	if err != nil {
		return err
	}

	summary := summarize(report)
	out := c.Root().Writer

	if cmd.jsonOutput {
		return writeJSON(c, summary, cmd.flags.ColorOutput())
	}

	if len(summary.Files) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No messages found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tGLOBAL\tLINES\tTOTAL")
	for _, f := range summary.Files {
		path := f.Path
		if path == "" {
			path = "(report)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", path, f.Global, f.Lines, f.Messages)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%d messages: %d errors, %d warnings, %d notices\n",
		summary.Total, summary.Errors, summary.Warnings, summary.Notices)
	return nil
}
