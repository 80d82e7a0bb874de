// Package script runs the Lua snippets attached to actions.
//
// Each run gets a fresh state with only the base, string, table and math
// libraries. Scripts see a read-only view of the action as the global
// table "action" and can write to the log with log(msg). A script's first
// string return value is reported back to the caller:
//
//	log("opening " .. action.name)
//	return "opened"
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/logging"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = time.Second

// ErrRunnerClosed is returned by Run after Close.
var ErrRunnerClosed = errors.New("script runner closed")

// Error reports a failed script with the action it belongs to.
type Error struct {
	ActionID string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script for %s: %v", e.ActionID, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Runner executes action scripts. It is safe for concurrent use; compiled
// chunks are cached by source text.
type Runner struct {
	mu       sync.Mutex
	timeout  time.Duration
	logger   *logging.Logger
	compiled map[string]*lua.FunctionProto
	closed   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds each run.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger scripts write to.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.OrNop(l)
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout:  DefaultTimeout,
		logger:   logging.Nop(),
		compiled: make(map[string]*lua.FunctionProto),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("script")
	return r
}

// Close drops the compile cache. Later runs fail with ErrRunnerClosed.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.compiled = nil
}

// Run executes a's script and returns its first string result. Actions
// without a script return "" and no error.
func (r *Runner) Run(ctx context.Context, a action.Action) (string, error) {
	if strings.TrimSpace(a.Script) == "" {
		return "", nil
	}

	proto, err := r.compile(a)
	if err != nil {
		return "", &Error{ActionID: a.ID, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	L := newState(r.logger.WithField("action", a.ID), a)
	defer L.Close()
	L.SetContext(ctx)

	out, err := call(L, proto)
	if err != nil {
		return "", &Error{ActionID: a.ID, Err: err}
	}
	return out, nil
}

func (r *Runner) compile(a action.Action) (*lua.FunctionProto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRunnerClosed
	}
	if proto, ok := r.compiled[a.Script]; ok {
		return proto, nil
	}

	name := "action:" + a.ID
	chunk, err := parse.Parse(strings.NewReader(a.Script), name)
	if err != nil {
		return nil, err
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	r.compiled[a.Script] = proto
	return proto, nil
}

// call runs proto, converting Lua panics into errors.
func call(L *lua.LState, proto *lua.FunctionProto) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
	}()

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, 1, nil); err != nil {
		return "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), nil
	}
	return "", nil
}
