package config

import (
	"strings"

	"github.com/tidwall/match"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ExportJSON renders the keyset as indented JSON in the keyset schema, so
// the output loads back with Parse.
func (k *Keyset) ExportJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, v)
	}

	set("options.timeout", k.Options.Timeout.String())
	if len(k.Options.IgnoreWhenFocused) > 0 {
		set("options.ignore_when_focused", k.Options.IgnoreWhenFocused)
	}
	set("options.platform", k.Options.Platform)
	set("options.reject_duplicates", k.Options.RejectDuplicates)
	set("options.log_level", k.Options.LogLevel)

	if err == nil {
		out, err = sjson.SetRawBytes(out, "actions", []byte(`{}`))
	}
	for _, id := range k.ActionIDs() {
		a := k.Actions[id]
		base := "actions." + escapePath(id)
		if err == nil {
			out, err = sjson.SetRawBytes(out, base, []byte(`{}`))
		}
		if a.Name != "" {
			set(base+".name", a.Name)
		}
		if len(a.Shortcut) > 0 {
			set(base+".shortcut", a.Shortcut)
		}
		if a.Description != "" {
			set(base+".description", a.Description)
		}
		if a.Section != "" {
			set(base+".section", a.Section)
		}
		if a.Script != "" {
			set(base+".script", a.Script)
		}
	}
	if err != nil {
		return nil, err
	}

	return pretty.PrettyOptions(out, &pretty.Options{Width: 80, Indent: "  "}), nil
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Filter returns a copy of the keyset holding only the actions whose ID
// matches the glob pattern ("nav.*", "?ave"). An empty pattern keeps all.
func (k *Keyset) Filter(pattern string) *Keyset {
	out := &Keyset{
		Source:  k.Source,
		Options: k.Options,
		Actions: make(map[string]ActionConfig, len(k.Actions)),
	}
	for id, a := range k.Actions {
		if pattern == "" || match.Match(id, pattern) {
			out.Actions[id] = a
		}
	}
	return out
}
