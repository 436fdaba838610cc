// Package viewer is the interactive Bubble Tea viewer for annotated file
// content and diffs.
package viewer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/highlight"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/loader"
	"github.com/colonyops/lintlens/internal/core/logging"
	"github.com/colonyops/lintlens/internal/core/version"
	tuinotify "github.com/colonyops/lintlens/internal/tui/notify"
)

// Lines kept above the selected row when scrolling to it.
const scrollContext = 3

// Mode selects what the viewer shows.
type Mode int

const (
	ModeContent Mode = iota
	ModeDiff
)

// ReportSource fetches analyzer messages for a version.
type ReportSource interface {
	FetchAnalyzerReport(ctx context.Context, versionID int, location string) ([]linter.Message, error)
}

// Options configures a Model.
type Options struct {
	Mode     Mode
	Version  version.Version
	DiffText string
	Language string // forced language; empty resolves from path and MIME type
	Resolver *highlight.Resolver
	Include  func(path string) bool // diff mode file filter
	Anchor   string
	ViewType codeview.ViewType
	Source   ReportSource
	Store    *linter.Store
	Bus      *tuinotify.Bus
	ToastTTL time.Duration
}

// SetVersionMsg replaces the version on display. DiffText is used in diff
// mode only.
type SetVersionMsg struct {
	Version  version.Version
	DiffText string
	Anchor   string
}

type reportMsg struct {
	versionID int
	messages  []linter.Message
	err       error
}

// Model is the viewer. It is used through a pointer so the load coordinator
// can queue fetch commands on it.
type Model struct {
	mode     Mode
	version  version.Version
	diffText string
	language string
	resolver *highlight.Resolver
	include  func(path string) bool
	anchor   string
	viewType codeview.ViewType

	source ReportSource
	store  *linter.Store
	bus    *tuinotify.Bus
	coord  *loader.Coordinator

	// fetch commands queued by the coordinator during the current Update
	pending []tea.Cmd

	keys      KeyMap
	help      help.Model
	viewport  viewport.Model
	ready     bool
	width     int
	height    int
	md        *Markdown
	toasts    *ToastController
	toastView *ToastView

	doc           Document
	annotated     []string
	renderErr     error
	scrollPending bool
	quitting      bool
}

// New returns a viewer for opts. Store and Bus are created when nil.
func New(opts Options) *Model {
	if opts.Store == nil {
		opts.Store = linter.NewStore()
	}
	if opts.Bus == nil {
		opts.Bus = tuinotify.NewBus()
	}
	if opts.ViewType == "" {
		opts.ViewType = codeview.ViewUnified
	}

	toasts := NewToastController(opts.ToastTTL)
	m := &Model{
		mode:          opts.Mode,
		version:       opts.Version,
		diffText:      opts.DiffText,
		language:      opts.Language,
		resolver:      opts.Resolver,
		include:       opts.Include,
		anchor:        opts.Anchor,
		viewType:      opts.ViewType,
		source:        opts.Source,
		store:         opts.Store,
		bus:           opts.Bus,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		md:            NewMarkdown(false),
		toasts:        toasts,
		toastView:     NewToastView(toasts),
		scrollPending: opts.Anchor != "",
	}
	m.coord = loader.New(m.store, m.enqueueFetch)
	m.bus.Subscribe(m.toasts.Push)
	return m
}

func (m *Model) Init() tea.Cmd {
	m.coord.Sync(m.version)
	return m.flush()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.ensureToastTick()
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case reportMsg:
		return m, m.handleReport(msg)
	case SetVersionMsg:
		return m, m.setVersion(msg)
	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	body := m.toastView.Overlay(m.viewport.View(), m.width)
	return body + "\n" + m.help.View(m.keys)
}

// Anchor returns the current anchor.
func (m *Model) Anchor() string { return m.anchor }

// ViewType returns the current diff layout.
func (m *Model) ViewType() codeview.ViewType { return m.viewType }

// Document returns the last rendered document.
func (m *Model) Document() Document { return m.doc }

// YOffset returns the viewport scroll position.
func (m *Model) YOffset() int { return m.viewport.YOffset }

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	bodyHeight := max(height-1, 1)
	if !m.ready {
		m.viewport = viewport.New(width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	}
	m.rerender()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Next):
		m.jump(1)
	case key.Matches(msg, m.keys.Prev):
		m.jump(-1)
	case key.Matches(msg, m.keys.Retry):
		if m.coord.Retry(m.version) {
			m.rerender()
			return m.flush()
		}
	case key.Matches(msg, m.keys.Split):
		if m.mode == ModeDiff {
			m.viewType = m.viewType.Toggle()
			m.rerender()
		}
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
	}
	return nil
}

// jump moves the anchor to the next or previous annotated row, wrapping at
// either end.
func (m *Model) jump(dir int) {
	ids := m.annotated
	if len(ids) == 0 {
		return
	}

	current := codeview.SelectedID(m.anchor)
	next := -1
	for i, id := range ids {
		if id == current {
			next = (i + dir + len(ids)) % len(ids)
			break
		}
	}
	if next < 0 {
		next = 0
		if dir < 0 {
			next = len(ids) - 1
		}
	}

	m.setAnchor("#" + ids[next])
}

func (m *Model) setAnchor(anchor string) {
	if anchor == m.anchor {
		return
	}
	m.anchor = anchor
	m.scrollPending = anchor != ""
	m.rerender()
}

func (m *Model) setVersion(msg SetVersionMsg) tea.Cmd {
	m.version = msg.Version
	if m.mode == ModeDiff {
		m.diffText = msg.DiffText
	}
	m.renderErr = nil

	m.coord.Sync(m.version)
	if msg.Anchor != m.anchor {
		m.setAnchor(msg.Anchor)
	} else {
		m.rerender()
	}
	return m.flush()
}

func (m *Model) enqueueFetch(versionID int, location string) {
	m.pending = append(m.pending, m.fetchCmd(versionID, location))
}

func (m *Model) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) fetchCmd(versionID int, location string) tea.Cmd {
	src := m.source
	path := m.version.SelectedPath

	return func() tea.Msg {
		if src == nil {
			return reportMsg{versionID: versionID, messages: []linter.Message{}}
		}

		ctx := logging.WithVersionID(context.Background(), versionID)
		ctx = logging.WithPath(ctx, path)

		msgs, err := src.FetchAnalyzerReport(ctx, versionID, location)
		return reportMsg{versionID: versionID, messages: msgs, err: err}
	}
}

// handleReport applies a fetch result to the store. Results for a version
// that is no longer on display update the store but not the view.
func (m *Model) handleReport(msg reportMsg) tea.Cmd {
	log := logging.Component("viewer")
	current := msg.versionID == m.version.ID

	if msg.err != nil {
		if !m.store.Fail(msg.versionID, msg.err) {
			log.Debug().Int("version_id", msg.versionID).Msg("discarding failure for version not loading")
			return nil
		}
		if current {
			m.bus.Errorf("fetch analyzer report: %v", msg.err)
		}
	} else if !m.store.Resolve(msg.versionID, linter.BuildIndex(msg.messages)) {
		log.Debug().Int("version_id", msg.versionID).Msg("discarding report for version not loading")
		return nil
	}

	if !current {
		log.Debug().
			Int("version_id", msg.versionID).
			Int("current_version_id", m.version.ID).
			Msg("ignoring report for version no longer on display")
		return nil
	}

	m.rerender()
	return m.ensureToastTick()
}

func (m *Model) ensureToastTick() tea.Cmd {
	if !m.toasts.HasToasts() || m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m *Model) contentLanguage() string {
	if m.language != "" {
		return m.language
	}
	return m.resolver.Resolve(m.version.SelectedPath, m.version.File.MimeType)
}

func (m *Model) diffLanguage(path string) string {
	return m.resolver.Resolve(path, "")
}

// rerender rebuilds the document from the current version, load state and
// anchor. A pending scroll is applied once and cleared.
func (m *Model) rerender() {
	if !m.ready {
		return
	}

	state := m.store.State(m.version.ID)
	width := m.viewport.Width

	switch m.mode {
	case ModeDiff:
		view, err := codeview.RenderDiff(codeview.DiffInput{
			Text:     m.diffText,
			Language: m.language,
			Resolve:  m.diffLanguage,
			Include:  m.include,
			Index:    state.Index,
			Anchor:   m.anchor,
			ViewType: m.viewType,
		})
		if err != nil {
			if m.renderErr == nil {
				m.bus.Errorf("%v", err)
			}
			m.renderErr = err
			m.doc = ErrorDocument(err, width)
			m.annotated = nil
			break
		}
		m.doc = RenderDiff(view, state, width, m.md)
		m.annotated = view.AnnotatedIDs()
	default:
		view := codeview.RenderContent(codeview.ContentInput{
			Path:     m.version.SelectedPath,
			Text:     m.version.File.Text,
			Language: m.contentLanguage(),
			Index:    state.Index,
			Anchor:   m.anchor,
		})
		m.doc = RenderContent(HeaderFor(m.version, state), view, width, m.md)
		m.annotated = view.AnnotatedIDs()
	}

	m.viewport.SetContent(m.doc.String())

	if m.scrollPending {
		m.scrollPending = false
		if line, ok := m.doc.Line(codeview.SelectedID(m.anchor)); ok {
			m.viewport.SetYOffset(max(line-scrollContext, 0))
		}
	}
}
