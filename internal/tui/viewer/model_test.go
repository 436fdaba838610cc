package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lintlens/internal/core/codeview"
	"github.com/colonyops/lintlens/internal/core/linter"
	"github.com/colonyops/lintlens/internal/core/notify"
	"github.com/colonyops/lintlens/internal/core/version"
	"github.com/colonyops/lintlens/pkg/tuitest"
)

type fakeSource struct {
	calls    []int
	messages map[int][]linter.Message
	err      error
}

func (f *fakeSource) FetchAnalyzerReport(_ context.Context, versionID int, _ string) ([]linter.Message, error) {
	f.calls = append(f.calls, versionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.messages[versionID], nil
}

func contentVersion(id, lines int) version.Version {
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&sb, "var x%d = %d;\n", i, i)
	}
	return version.Version{
		ID:             id,
		SelectedPath:   "lib/app.js",
		ReportLocation: fmt.Sprintf("/reports/%d/", id),
		File: version.FileContent{
			Text:     sb.String(),
			MimeType: "application/javascript",
			Size:     int64(sb.Len()),
		},
	}
}

// drain runs cmd and feeds report results back into m.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case reportMsg:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

func press(m *Model, r rune) tea.Cmd {
	_, cmd := m.Update(tuitest.KeyPress(r))
	return cmd
}

func resize(m *Model) {
	m.Update(tuitest.WindowSize(80, 20))
}

func TestModel_FetchesOncePerVersion(t *testing.T) {
	src := &fakeSource{messages: map[int][]linter.Message{
		7: {warning("lib/app.js", 2, "shadowed variable")},
	}}
	store := linter.NewStore()
	m := New(Options{Version: contentVersion(7, 5), Source: src, Store: store})

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, linter.StatusLoading, store.State(7).Status)

	assert.Nil(t, m.Init(), "second evaluation must not fetch again")

	resize(m)
	assert.Contains(t, m.Document().String(), "loading analyzer messages")

	drain(t, m, cmd)
	assert.Equal(t, []int{7}, src.calls)
	assert.Equal(t, linter.StatusLoaded, store.State(7).Status)
	assert.Contains(t, m.Document().String(), "shadowed variable")

	assert.Nil(t, m.Init())
}

func TestModel_IgnoresResultForPreviousVersion(t *testing.T) {
	src := &fakeSource{messages: map[int][]linter.Message{
		1: {warning("lib/app.js", 2, "from version one")},
		2: {warning("lib/app.js", 2, "from version two")},
	}}
	store := linter.NewStore()
	m := New(Options{Version: contentVersion(1, 5), Source: src, Store: store})

	first := m.Init()
	resize(m)

	_, second := m.Update(SetVersionMsg{Version: contentVersion(2, 5)})
	require.NotNil(t, second)

	drain(t, m, first)
	assert.Equal(t, linter.StatusLoaded, store.State(1).Status)
	out := m.Document().String()
	assert.NotContains(t, out, "from version one")
	assert.Contains(t, out, "loading analyzer messages")

	drain(t, m, second)
	out = m.Document().String()
	assert.Contains(t, out, "from version two")
	assert.NotContains(t, out, "from version one")
}

func TestModel_FailureAndRetry(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	store := linter.NewStore()
	m := New(Options{Version: contentVersion(3, 5), Source: src, Store: store})

	cmd := m.Init()
	resize(m)
	drain(t, m, cmd)

	assert.Equal(t, linter.StatusFailed, store.State(3).Status)
	assert.Contains(t, m.Document().String(), "failed to load analyzer messages: boom")

	require.Len(t, m.toasts.Toasts(), 1)
	toast := m.toasts.Toasts()[0].notification
	assert.Equal(t, notify.LevelError, toast.Level)
	assert.Equal(t, "fetch analyzer report: boom", toast.Message)
	assert.NotEmpty(t, toast.ID)

	// failed versions are not refetched implicitly
	assert.Nil(t, m.Init())

	src.err = nil
	retry := press(m, 'r')
	require.NotNil(t, retry)
	assert.Contains(t, m.Document().String(), "loading analyzer messages")

	drain(t, m, retry)
	assert.Equal(t, linter.StatusLoaded, store.State(3).Status)
	assert.Equal(t, []int{3, 3}, src.calls)

	assert.Nil(t, press(m, 'r'), "retry only applies to failed fetches")
}

func TestModel_ScrollsToAnchorOnMount(t *testing.T) {
	m := New(Options{Version: contentVersion(1, 100), Anchor: "#L60"})
	m.Init()
	resize(m)

	line, ok := m.Document().Line("L60")
	require.True(t, ok)
	assert.Equal(t, line-scrollContext, m.YOffset())
}

func TestModel_NoAnchorNoScroll(t *testing.T) {
	m := New(Options{Version: contentVersion(1, 100)})
	m.Init()
	resize(m)

	assert.Equal(t, 0, m.YOffset())
}

func TestModel_ReportDoesNotScrollAgain(t *testing.T) {
	src := &fakeSource{messages: map[int][]linter.Message{
		1: {warning("lib/app.js", 5, "early message")},
	}}
	m := New(Options{Version: contentVersion(1, 100), Anchor: "#L60", Source: src})

	cmd := m.Init()
	resize(m)
	press(m, 'j')
	press(m, 'j')
	offset := m.YOffset()

	drain(t, m, cmd)
	assert.Equal(t, offset, m.YOffset())
}

func TestModel_NextAndPrevAnnotated(t *testing.T) {
	src := &fakeSource{messages: map[int][]linter.Message{
		1: {
			warning("lib/app.js", 3, "third"),
			warning("lib/app.js", 50, "fiftieth"),
		},
	}}
	m := New(Options{Version: contentVersion(1, 100), Source: src})

	cmd := m.Init()
	resize(m)
	drain(t, m, cmd)

	press(m, 'n')
	assert.Equal(t, "#L3", m.Anchor())

	press(m, 'n')
	assert.Equal(t, "#L50", m.Anchor())
	line, ok := m.Document().Line("L50")
	require.True(t, ok)
	assert.Equal(t, line-scrollContext, m.YOffset())

	press(m, 'n')
	assert.Equal(t, "#L3", m.Anchor())

	press(m, 'N')
	assert.Equal(t, "#L50", m.Anchor())
}

const modelDiff = `--- a/lib/app.js
+++ b/lib/app.js
@@ -1,2 +1,3 @@
 one
+two
 three
`

func TestModel_DiffToggleSplit(t *testing.T) {
	v := version.Version{ID: 1}
	m := New(Options{Mode: ModeDiff, Version: v, DiffText: modelDiff})
	m.Init()
	resize(m)

	assert.Equal(t, codeview.ViewUnified, m.ViewType())
	line, ok := m.Document().Line("I2")
	require.True(t, ok)
	assert.NotContains(t, m.Document().Lines[line], "│")

	press(m, 's')
	assert.Equal(t, codeview.ViewSplit, m.ViewType())
	line, ok = m.Document().Line("I2")
	require.True(t, ok)
	assert.Contains(t, m.Document().Lines[line], "│")
}

func TestModel_ContentIgnoresSplitToggle(t *testing.T) {
	m := New(Options{Version: contentVersion(1, 3)})
	m.Init()
	resize(m)

	press(m, 's')
	assert.Equal(t, codeview.ViewUnified, m.ViewType())
}

func TestModel_MalformedDiff(t *testing.T) {
	m := New(Options{Mode: ModeDiff, Version: version.Version{ID: 1}, DiffText: "this is not a diff\n"})
	m.Init()
	resize(m)

	assert.Contains(t, m.Document().String(), "malformed diff")
	require.Len(t, m.toasts.Toasts(), 1)
	assert.Equal(t, notify.LevelError, m.toasts.Toasts()[0].notification.Level)

	// rerendering does not repeat the notification
	press(m, 's')
	assert.Len(t, m.toasts.Toasts(), 1)
}

func TestModel_Quit(t *testing.T) {
	m := New(Options{Version: contentVersion(1, 3)})
	m.Init()
	resize(m)

	cmd := press(m, 'q')
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := New(Options{Version: contentVersion(1, 3)})
	m.Init()
	resize(m)

	_, cmd := m.Update(tuitest.KeyCtrlC())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	src := &fakeSource{messages: map[int][]linter.Message{
		4: {warning("lib/app.js", 2, "shadowed variable")},
	}}
	m := New(Options{Version: contentVersion(4, 5), Source: src})

	assert.Empty(t, m.View(), "no view before the first resize")

	cmd := m.Init()
	resize(m)
	drain(t, m, cmd)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "lib/app.js")
	assert.Contains(t, view, "var x2 = 2;")
	assert.Contains(t, view, "shadowed variable")
}
