package app

import (
	"context"
	"sync"

	"github.com/dshills/keychord/internal/input/action"
)

// scriptQueueSize bounds the selections waiting for the script worker.
const scriptQueueSize = 16

type scriptJob struct {
	action action.Action
	status Status
}

// startScripts runs action scripts on one worker goroutine so a slow script
// never holds up key delivery. Scripts still run in selection order. The
// returned stop function drains the queue and waits for the worker; cancel
// ctx first so a long script ends early.
func (app *Application) startScripts(ctx context.Context) (stop func()) {
	jobs := make(chan scriptJob, scriptQueueSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for job := range jobs {
			app.runScript(ctx, job)
			app.redraw()
		}
	}()

	app.mu.Lock()
	app.jobs = jobs
	app.mu.Unlock()

	return func() {
		app.mu.Lock()
		app.jobs = nil
		app.mu.Unlock()
		close(jobs)
		wg.Wait()
	}
}

// enqueueScript hands a selection to the worker. It reports false when no
// worker is running; the caller then runs the script itself.
func (app *Application) enqueueScript(a action.Action, st Status) bool {
	app.mu.RLock()
	jobs := app.jobs
	queued := false
	if jobs != nil {
		select {
		case jobs <- scriptJob{action: a, status: st}:
			queued = true
		default:
		}
	}
	app.mu.RUnlock()

	if jobs != nil && !queued {
		app.logger.Warn("script queue full, dropping %s", a.ID)
		st.Err = ErrScriptQueueFull
		app.metrics.RecordScriptError()
		app.setStatus(st)
		return true
	}
	return queued
}

func (app *Application) runScript(ctx context.Context, job scriptJob) {
	st := job.status
	st.Output, st.Err = app.scripts.Run(ctx, job.action)
	if st.Err != nil {
		app.metrics.RecordScriptError()
		app.logger.Warn("%v", st.Err)
	}
	app.setStatus(st)
}
