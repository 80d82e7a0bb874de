// Package app runs a keyset interactively in the terminal: it loads the
// keyset, activates its shortcuts on a terminal host, runs action scripts
// and reloads the keyset when its file changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/palette"
	"github.com/dshills/keychord/internal/input/terminal"
	"github.com/dshills/keychord/internal/logging"
	"github.com/dshills/keychord/internal/script"
)

// Built-in action IDs. They are bound only when no keyset action already
// uses their shortcut.
const (
	QuitActionID      = "app.quit"
	InterruptActionID = "app.interrupt"
	PaletteActionID   = "app.palette"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the keyset file. Ignored when Keyset is set.
	ConfigPath string

	// Keyset is used as-is instead of loading ConfigPath.
	Keyset *config.Keyset

	// Host receives key presses. Default: the current terminal.
	Host *terminal.Host

	// Logger receives application logs. Default: discard.
	Logger *logging.Logger

	// Watch reloads the keyset when its file changes.
	Watch bool

	// ScriptTimeout bounds each action script. Default: script.DefaultTimeout
	ScriptTimeout time.Duration
}

// Status describes the most recent selection or notice.
type Status struct {
	ActionID string
	Label    string
	Shortcut string
	Output   string
	Err      error
	At       time.Time

	// Message is a notice such as a reload result.
	Message string
}

// Application wires a keyset to a terminal host.
type Application struct {
	mu     sync.RWMutex
	drawMu sync.Mutex

	opts    Options
	logger  *logging.Logger
	host    *terminal.Host
	scripts *script.Runner
	metrics *Metrics
	palette *palette.Palette

	keyset     *config.Keyset
	resolver   *action.Resolver
	activation *action.Activation
	status     Status

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	jobs    chan scriptJob
}

// New loads the keyset and prepares the application. It does not touch the
// terminal until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		logger:  logging.OrNop(opts.Logger).WithComponent("app"),
		metrics: NewMetrics(),
		host:    opts.Host,
		palette: palette.New(0),
	}

	if app.host == nil {
		host, err := terminal.NewDefaultHost(opts.Logger)
		if err != nil {
			return nil, &InitError{Component: "terminal", Err: err}
		}
		app.host = host
	}

	ks := opts.Keyset
	if ks == nil {
		if opts.ConfigPath == "" {
			return nil, ErrNoConfig
		}
		var err error
		ks, err = config.LoadWithEnv(opts.ConfigPath)
		if err != nil {
			return nil, &InitError{Component: "keyset", Err: err}
		}
	}

	resolver, err := app.buildResolver(ks)
	if err != nil {
		return nil, &InitError{Component: "resolver", Err: err}
	}
	app.keyset = ks
	app.resolver = resolver
	app.palette.SetActions(paletteActions(ks))

	app.scripts = script.NewRunner(
		script.WithLogger(opts.Logger),
		script.WithTimeout(opts.ScriptTimeout),
	)

	return app, nil
}

// buildResolver validates ks and builds a resolver for it, including the
// built-in actions.
func (app *Application) buildResolver(ks *config.Keyset) (*action.Resolver, error) {
	if err := ks.Validate(); err != nil {
		return nil, err
	}

	opts := ks.ToResolverOptions()
	// Terminals never report the Command key, so "$mod" means Control here
	// unless the keyset names a platform.
	if opts.Platform == key.PlatformAuto {
		opts.Platform = key.PlatformOther
	}
	opts.Focus = app.host
	opts.Logger = app.opts.Logger

	actionMap := ks.ActionMap()
	list := builtinActions(ks, opts.Platform)
	for _, id := range ks.ActionIDs() {
		list = append(list, actionMap[id])
	}

	return action.NewResolverFromList(list, app.onSelect, opts)
}

// builtinActions returns the quit actions whose shortcuts the keyset leaves free.
func builtinActions(ks *config.Keyset, p key.Platform) []action.Action {
	canonical := func(s string) string {
		return key.FormatSequence(key.ParseSequence(s, p))
	}
	taken := make(map[string]bool)
	for _, a := range ks.ActionMap() {
		if a.HasShortcut() {
			taken[canonical(a.Serialized())] = true
		}
	}

	var out []action.Action
	for _, a := range []action.Action{
		{ID: QuitActionID, Name: "Quit", Shortcut: []string{"q"}, Section: "Application"},
		{ID: InterruptActionID, Name: "Quit", Shortcut: []string{"Control+c"}, Section: "Application"},
		{ID: PaletteActionID, Name: "Action palette", Shortcut: []string{"$mod+p"}, Section: "Application"},
	} {
		if !taken[canonical(a.Serialized())] {
			out = append(out, a)
		}
	}
	return out
}

// onSelect runs for every selected action.
func (app *Application) onSelect(a action.Action) {
	switch a.ID {
	case QuitActionID, InterruptActionID:
		app.logger.Info("quit via %s", a.Serialized())
		app.Quit()
		return
	case PaletteActionID:
		app.openPalette()
		return
	}

	app.metrics.RecordSelection()
	st := Status{
		ActionID: a.ID,
		Label:    a.Label(),
		Shortcut: a.Serialized(),
		At:       time.Now(),
	}
	app.logger.Info("selected %s", a.ID)
	app.palette.Record(a.ID)

	if a.Script == "" {
		app.setStatus(st)
		return
	}
	if !app.enqueueScript(a, st) {
		app.runScript(app.runContext(), scriptJob{action: a, status: st})
	}
}

func (app *Application) setStatus(st Status) {
	app.mu.Lock()
	app.status = st
	app.mu.Unlock()
}

func (app *Application) runContext() context.Context {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.ctx != nil {
		return app.ctx
	}
	return context.Background()
}

// Run activates the keyset on the host and processes keys until ctx is done
// or a quit action fires. A quit returns nil.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.mu.Lock()
	app.ctx, app.cancel = ctx, cancel
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.ctx, app.cancel = nil, nil
		app.mu.Unlock()
	}()

	if err := app.host.Start(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.host.Close()

	app.host.OnKey(app.afterKey)
	app.host.OnResize(func(int, int) { app.redraw() })

	stopScripts := app.startScripts(ctx)
	defer func() {
		cancel()
		stopScripts()
	}()

	app.mu.Lock()
	app.activation = app.resolver.Activate(app.host)
	source := app.keyset.Source
	count := len(app.resolver.Bindings())
	app.mu.Unlock()
	defer app.deactivate()

	if app.opts.Watch && source != "" {
		w, err := config.NewWatcher(source, app.onReload, config.WithWatcherLogger(app.opts.Logger))
		if err != nil {
			app.logger.Warn("not watching %s: %v", source, err)
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	app.redraw()
	app.logger.Info("running with %d bindings", count)

	err := app.host.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit stops a running application.
func (app *Application) Quit() {
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

func (app *Application) deactivate() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.activation != nil {
		app.activation.Deactivate()
		app.activation = nil
	}
}

func (app *Application) afterKey(e *key.Event) {
	app.metrics.RecordKeystroke(e.DefaultPrevented())
	if !e.DefaultPrevented() && app.palette.IsOpen() {
		app.paletteKey(e)
	}
	app.redraw()
}

func (app *Application) onReload(ks *config.Keyset, err error) {
	if err == nil {
		err = app.Reload(ks)
	} else {
		app.metrics.RecordReload(false)
	}
	if err != nil {
		app.logger.Warn("reload: %v", err)
		app.mu.Lock()
		app.status.Message = "reload failed: " + err.Error()
		app.mu.Unlock()
	}
	app.redraw()
}

// Reload replaces the keyset. A running application deactivates the old
// bindings before activating the new ones. On error the old keyset stays.
func (app *Application) Reload(ks *config.Keyset) error {
	resolver, err := app.buildResolver(ks)
	if err != nil {
		app.metrics.RecordReload(false)
		return err
	}

	app.palette.SetActions(paletteActions(ks))

	app.mu.Lock()
	app.keyset = ks
	app.resolver = resolver
	if app.activation != nil {
		app.activation.Deactivate()
		app.activation = resolver.Activate(app.host)
	}
	app.status.Message = fmt.Sprintf("reloaded %d actions", len(ks.Actions))
	app.mu.Unlock()

	app.metrics.RecordReload(true)
	app.logger.Info("reloaded %d actions", len(ks.Actions))
	return nil
}

// Status returns the latest status.
func (app *Application) Status() Status {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

// Bindings returns the active bindings in match priority order.
func (app *Application) Bindings() []action.Entry {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.resolver.Bindings()
}

// Keyset returns the current keyset.
func (app *Application) Keyset() *config.Keyset {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.keyset
}

// Metrics returns the application's counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
