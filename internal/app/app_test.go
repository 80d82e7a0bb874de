package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/focus"
	"github.com/dshills/keychord/internal/input/terminal"
)

const testKeyset = `
[options]
timeout = "1s"

[actions.search]
name = "Search"
shortcut = ["$mod+k"]
script = 'return "searching " .. action.id'

[actions.top]
name = "Top"
shortcut = "g g"

[actions.broken]
shortcut = "b"
script = 'error("nope")'
`

type testApp struct {
	*Application
	screen tcell.SimulationScreen
	done   chan error
	cancel context.CancelFunc
}

func newTestApp(t *testing.T, content string, watch bool) *testApp {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	screen := tcell.NewSimulationScreen("")
	app, err := New(Options{
		ConfigPath: path,
		Host:       terminal.NewHost(screen, nil),
		Watch:      watch,
	})
	require.NoError(t, err)

	return &testApp{Application: app, screen: screen}
}

func (ta *testApp) start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ta.cancel = cancel
	ta.done = make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		ta.done <- ta.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
		}
	})
	require.Eventually(t, ta.running.Load, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		ta.mu.RLock()
		defer ta.mu.RUnlock()
		return ta.activation != nil
	}, time.Second, 5*time.Millisecond)
}

func (ta *testApp) keys(runes string) {
	for _, r := range runes {
		ta.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestRunSelectsActionsAndRunsScripts(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)

	ta.screen.InjectKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)
	require.Eventually(t, func() bool { return ta.Status().ActionID == "search" }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "searching search", ta.Status().Output)

	ta.keys("gg")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "top" }, 2*time.Second, 5*time.Millisecond)

	ta.keys("b")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "broken" }, 2*time.Second, 5*time.Millisecond)
	assert.Error(t, ta.Status().Err)

	snap := ta.Metrics().Snapshot()
	assert.Equal(t, uint64(3), snap.Selections)
	assert.Equal(t, uint64(1), snap.ScriptErrors)
}

func TestQuitActionStopsRun(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)

	ta.keys("q")
	select {
	case err := <-ta.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("q did not stop the application")
	}
	assert.False(t, ta.running.Load())
}

func TestRunTwice(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)
	assert.ErrorIs(t, ta.Run(context.Background()), ErrAlreadyRunning)
}

func TestFocusedInputSuppressesShortcuts(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)

	ta.host.Focus(focus.NewNode("input"))
	ta.keys("gg")
	ta.screen.InjectKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)
	require.Eventually(t, func() bool {
		return ta.Metrics().Snapshot().Keystrokes == 3
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, ta.Status().ActionID)
	assert.Zero(t, ta.Metrics().Snapshot().Handled)
}

func TestBuiltinsYieldToKeyset(t *testing.T) {
	ta := newTestApp(t, `
[actions.query]
shortcut = "q"
`, false)

	var ids []string
	for _, b := range ta.Bindings() {
		ids = append(ids, b.Action.ID)
	}
	assert.ElementsMatch(t, []string{"query", InterruptActionID, PaletteActionID}, ids)
}

func TestReloadSwapsBindings(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)

	ks := config.Default()
	ks.Actions["save"] = config.ActionConfig{Name: "Save", Shortcut: []string{"s"}}
	require.NoError(t, ta.Reload(ks))
	assert.Equal(t, "reloaded 1 actions", ta.Status().Message)

	ta.keys("ggs")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "save" }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(1), ta.Metrics().Snapshot().Selections, "old bindings no longer fire")
}

func TestReloadRejectsInvalidKeyset(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)

	ks := config.Default()
	ks.Actions["bad"] = config.ActionConfig{Shortcut: []string{"Hyper+x"}}
	err := ta.Reload(ks)
	assert.True(t, errors.Is(err, config.ErrValidationFailed))
	assert.Contains(t, ta.Keyset().Actions, "search")
	assert.Equal(t, uint64(1), ta.Metrics().Snapshot().ReloadFailures)
}

func TestWatchReloadsFromDisk(t *testing.T) {
	ta := newTestApp(t, testKeyset, true)
	ta.start(t)

	require.NoError(t, os.WriteFile(ta.Keyset().Source, []byte("[actions.x]\nshortcut = \"x\"\n"), 0o644))
	require.Eventually(t, func() bool {
		_, ok := ta.Keyset().Actions["x"]
		return ok
	}, 3*time.Second, 10*time.Millisecond)
}

func TestNewErrors(t *testing.T) {
	host := terminal.NewHost(tcell.NewSimulationScreen(""), nil)

	_, err := New(Options{Host: host})
	assert.ErrorIs(t, err, ErrNoConfig)

	_, err = New(Options{Host: host, ConfigPath: filepath.Join(t.TempDir(), "none.toml")})
	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "keyset", ie.Component)
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestRender(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)

	for _, b := range ta.Bindings() {
		if b.Action.ID == "search" {
			ta.onSelect(b.Action)
		}
	}

	lines := ta.render()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "6 bindings")
	assert.Contains(t, lines[0], "timeout 1s")
	assert.Equal(t, "last:    Search [$mod+k] -> searching search", lines[2])
	assert.Contains(t, lines, "  Control+c            Quit")
	assert.Equal(t, "  b                    broken", lines[len(lines)-1])
}

func TestPaletteChoosesAction(t *testing.T) {
	ta := newTestApp(t, testKeyset+`
[actions.unbound]
name = "Unbound tool"
script = 'return "ran"'
`, false)
	ta.start(t)

	ta.screen.InjectKey(tcell.KeyCtrlP, 0, tcell.ModCtrl)
	require.Eventually(t, ta.Palette().IsOpen, 2*time.Second, 5*time.Millisecond)

	// q would quit if shortcuts were still live.
	ta.keys("unbq")
	ta.screen.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.Palette().Query() == "unb" }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, ta.running.Load())

	ta.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.Eventually(t, func() bool { return ta.Status().ActionID == "unbound" }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "ran", ta.Status().Output)
	assert.False(t, ta.Palette().IsOpen())
	assert.Nil(t, ta.host.ActiveElement())
	assert.Equal(t, 0, ta.Palette().History().Position("unbound"))

	ta.keys("gg")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "top" }, 2*time.Second, 5*time.Millisecond)
}

func TestPaletteEscapeRestoresShortcuts(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.start(t)

	ta.screen.InjectKey(tcell.KeyCtrlP, 0, tcell.ModCtrl)
	require.Eventually(t, ta.Palette().IsOpen, 2*time.Second, 5*time.Millisecond)
	ta.keys("b")
	ta.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.Eventually(t, func() bool { return !ta.Palette().IsOpen() }, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, ta.Status().ActionID)

	ta.keys("b")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "broken" }, 2*time.Second, 5*time.Millisecond)
}

func TestRenderPalette(t *testing.T) {
	ta := newTestApp(t, testKeyset, false)
	ta.openPalette()
	ta.Palette().SetQuery("se")

	lines := ta.render()
	assert.Contains(t, lines, "palette: se_")
	assert.Contains(t, lines, "> Search               $mod+k")
}

func TestReloadWhileStarting(t *testing.T) {
	ta := newTestApp(t, testKeyset, true)

	reloaded := make(chan struct{})
	go func() {
		defer close(reloaded)
		for i := 0; i < 20; i++ {
			ks := config.Default()
			ks.Actions["save"] = config.ActionConfig{Name: "Save", Shortcut: []string{"s"}}
			assert.NoError(t, ta.Reload(ks))
		}
	}()
	ta.start(t)
	<-reloaded

	assert.Contains(t, ta.Keyset().Actions, "save")
	ta.keys("s")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "save" }, 2*time.Second, 5*time.Millisecond)
}

func TestSlowScriptDoesNotBlockKeys(t *testing.T) {
	ta := newTestApp(t, testKeyset+`
[actions.spin]
shortcut = "w"
script = 'while true do end'
`, false)
	ta.start(t)

	ta.keys("w")
	ta.keys("gg")
	require.Eventually(t, func() bool { return ta.Status().ActionID == "top" }, 500*time.Millisecond, 5*time.Millisecond)

	require.Eventually(t, func() bool { return ta.Status().ActionID == "spin" }, 3*time.Second, 10*time.Millisecond)
	assert.Error(t, ta.Status().Err)
	assert.Equal(t, uint64(1), ta.Metrics().Snapshot().ScriptErrors)
}
