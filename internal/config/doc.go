// Package config loads keysets: named actions with their shortcuts plus the
// options that govern matching.
//
// Keysets are read from TOML, YAML or JSON files, chosen by extension. All
// three formats share one schema:
//
//	[options]
//	timeout = "400ms"            # or an integer number of milliseconds
//	ignore_when_focused = ["select"]
//	platform = "auto"            # auto, apple or other
//	reject_duplicates = false
//	log_level = "info"
//
//	[actions.search]
//	name = "Search"
//	shortcut = ["$mod+k"]
//	description = "Open the search palette"
//	section = "Navigation"
//	script = 'log("searching")'
//
// A shortcut may also be a single string such as "g g". Environment
// variables prefixed with KEYCHORD_ override the options section, and a
// Watcher reloads a keyset when its file changes.
package config
