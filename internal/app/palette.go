package app

import (
	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/input/focus"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/palette"
)

// paletteInput stands for the palette's text field while it has focus, so
// shortcuts stand down while the user types a query.
var paletteInput = focus.NewNode("input", "role", "combobox")

// paletteActions lists every keyset action, with or without a shortcut.
func paletteActions(ks *config.Keyset) []action.Action {
	m := ks.ActionMap()
	out := make([]action.Action, 0, len(m))
	for _, id := range ks.ActionIDs() {
		out = append(out, m[id])
	}
	return out
}

func (app *Application) openPalette() {
	app.palette.Open()
	app.host.Focus(paletteInput)
	app.logger.Debug("palette opened")
}

// paletteKey routes a key the shortcuts left alone to the open palette.
func (app *Application) paletteKey(e *key.Event) {
	outcome, a := app.palette.HandleKey(e)
	switch outcome {
	case palette.Closed:
		app.host.Blur()
	case palette.Chosen:
		app.host.Blur()
		app.onSelect(a)
	}
}

// Palette returns the action palette.
func (app *Application) Palette() *palette.Palette {
	return app.palette
}
