package config

import (
	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/logging"
)

// ActionMap converts the keyset's actions for action.NewResolver.
func (k *Keyset) ActionMap() map[string]action.Action {
	out := make(map[string]action.Action, len(k.Actions))
	for id, a := range k.Actions {
		out[id] = action.Action{
			ID:          id,
			Name:        a.Name,
			Shortcut:    append([]string(nil), a.Shortcut...),
			Description: a.Description,
			Section:     a.Section,
			Script:      a.Script,
		}
	}
	return out
}

// ToResolverOptions converts the keyset's options. An unparseable platform
// falls back to auto-detection; Validate reports it.
func (k *Keyset) ToResolverOptions() action.Options {
	platform, err := key.ParsePlatform(k.Options.Platform)
	if err != nil {
		platform = key.PlatformAuto
	}
	return action.Options{
		Timeout:           k.Options.Timeout,
		IgnoreWhenFocused: append([]string(nil), k.Options.IgnoreWhenFocused...),
		Platform:          platform,
		RejectDuplicates:  k.Options.RejectDuplicates,
	}
}

// LogLevel returns the configured log level.
func (k *Keyset) LogLevel() logging.Level {
	return logging.ParseLevel(k.Options.LogLevel)
}
