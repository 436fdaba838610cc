package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/loader"
	"github.com/colonyops/lintlens/internal/core/logging"
	"github.com/colonyops/lintlens/internal/core/notify"
	"github.com/colonyops/lintlens/internal/core/version"
	"github.com/colonyops/lintlens/internal/tui/jsoncolor"
	tuinotify "github.com/colonyops/lintlens/internal/tui/notify"
	"github.com/colonyops/lintlens/internal/tui/viewer"
	"github.com/colonyops/lintlens/pkg/iojson"
)

const defaultPlainWidth = 100

// newBus returns the notification bus. Plain output has no toasts, so
// notifications are echoed to w instead.
func newBus(plain bool, w io.Writer) *tuinotify.Bus {
	bus := tuinotify.NewBus()
	if plain && w != nil {
		bus.Subscribe(func(n notify.Notification) {
			_, _ = fmt.Fprintf(w, "%s: %s\n", n.Level, n.Message)
		})
	}
	return bus
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPlainWidth
}

func runViewer(ctx context.Context, opts viewer.Options) error {
	p := tea.NewProgram(viewer.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// loadPlain runs load and the analyzer report fetch for v concurrently. The
// report is dispatched through the load coordinator so store ends up in the
// state the viewer would reach. A failed report is recorded in store and on
// the bus; only load errors are returned.
func loadPlain(
	ctx context.Context,
	store *linter.Store,
	bus *tuinotify.Bus,
	src viewer.ReportSource,
	v version.Version,
	load func(ctx context.Context) error,
) error {
	g, gctx := errgroup.WithContext(ctx)

	coord := loader.New(store, func(versionID int, location string) {
		g.Go(func() error {
			ctx := logging.WithVersionID(gctx, versionID)
			msgs, err := src.FetchAnalyzerReport(ctx, versionID, location)
			if err != nil {
				store.Fail(versionID, err)
				if gctx.Err() == nil {
					bus.Errorf("fetch analyzer report: %v", err)
				}
				return nil
			}
			store.Resolve(versionID, linter.BuildIndex(msgs))
			return nil
		})
	})

	g.Go(func() error { return load(gctx) })
	coord.Sync(v)

	return g.Wait()
}

// contentDocument renders v in content mode for plain output.
func contentDocument(v version.Version, state linter.LoadState, resolver *highlight.Resolver, language, anchor string) viewer.Document {
	if language == "" {
		language = resolver.Resolve(v.SelectedPath, v.File.MimeType)
	}

	view := codeview.RenderContent(codeview.ContentInput{
		Path:     v.SelectedPath,
		Text:     v.File.Text,
		Language: language,
		Index:    state.Index,
		Anchor:   anchor,
	})

	return viewer.RenderContent(viewer.HeaderFor(v, state), view, terminalWidth(), viewer.NewMarkdown(true))
}

func printDocument(w io.Writer, doc viewer.Document) error {
	_, err := fmt.Fprintln(w, doc.String())
	return err
}

// writeJSON writes obj as indented JSON, colorized when color is set.
func writeJSON(c *cli.Command, obj any, color bool) error {
	w, ew := c.Root().Writer, c.Root().ErrWriter
	if !color {
		return iojson.WriteWith(w, ew, obj)
	}

	bits, err := json.Marshal(obj)
	if err != nil {
		_, _ = fmt.Fprintln(ew, iojson.MarshalError("error marshaling output", map[string]any{"error": err.Error()}))
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, jsoncolor.Colorize(bits))
	return err
}
