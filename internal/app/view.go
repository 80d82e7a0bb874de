package app

import (
	"fmt"
	"strings"
)

func (app *Application) redraw() {
	lines := app.render()
	app.drawMu.Lock()
	defer app.drawMu.Unlock()
	app.host.Draw(lines)
}

// render builds the screen: a header, the status line, pending sequences,
// the palette when open, and the binding list.
func (app *Application) render() []string {
	app.mu.RLock()
	defer app.mu.RUnlock()

	source := app.keyset.Source
	if source == "" {
		source = "(inline keyset)"
	}
	bindings := app.resolver.Bindings()

	lines := []string{
		fmt.Sprintf("keychord  %s  %d bindings, timeout %s", source, len(bindings), app.resolver.Timeout()),
		"",
		"last:    " + formatStatus(app.status),
	}

	if app.activation != nil {
		var pending []string
		for _, p := range app.activation.Pending() {
			pending = append(pending, fmt.Sprintf("%s (%d/%d)", p.Shortcut, p.Matched, p.Total))
		}
		lines = append(lines, "pending: "+strings.Join(pending, ", "))
	}
	if app.status.Message != "" {
		lines = append(lines, "notice:  "+app.status.Message)
	}

	if app.palette.IsOpen() {
		lines = append(lines, "", "palette: "+app.palette.Query()+"_")
		results, sel := app.palette.Results()
		for i, r := range results {
			marker := "  "
			if i == sel {
				marker = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%-20s %s", marker, r.Action.Label(), r.Action.Serialized()))
		}
	}

	lines = append(lines, "")
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("  %-20s %s", b.Shortcut, b.Action.Label()))
	}
	return lines
}

func formatStatus(st Status) string {
	if st.ActionID == "" {
		return "-"
	}
	s := fmt.Sprintf("%s [%s]", st.Label, st.Shortcut)
	switch {
	case st.Err != nil:
		s += " error: " + st.Err.Error()
	case st.Output != "":
		s += " -> " + st.Output
	}
	return s
}
