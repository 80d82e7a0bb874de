package config

import (
	"strings"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/sequence"
)

var logLevels = map[string]bool{
	"":        true,
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks every option and shortcut and returns ValidationErrors
// listing all problems, or nil.
func (k *Keyset) Validate() error {
	var errs ValidationErrors
	add := func(path, msg string, v any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Code: code})
	}

	if k.Options.Timeout <= 0 {
		add("options.timeout", "must be positive", k.Options.Timeout, ErrCodeOutOfRange)
	}

	platform, err := key.ParsePlatform(k.Options.Platform)
	if err != nil {
		add("options.platform", "must be auto, apple or other", k.Options.Platform, ErrCodeInvalidEnum)
	}

	if !logLevels[strings.ToLower(strings.TrimSpace(k.Options.LogLevel))] {
		add("options.log_level", "must be debug, info, warn or error", k.Options.LogLevel, ErrCodeInvalidEnum)
	}

	owners := make(map[string]string)
	for _, id := range k.ActionIDs() {
		a := k.Actions[id]
		shortcut := sequence.Serialize(a.Shortcut)
		if shortcut == "" {
			continue
		}

		if _, err := key.ParseSequenceStrict(shortcut, platform); err != nil {
			add("actions."+id+".shortcut", err.Error(), shortcut, ErrCodeInvalidShortcut)
			continue
		}

		if prev, ok := owners[shortcut]; ok && k.Options.RejectDuplicates {
			add("actions."+id+".shortcut", "already bound to "+prev, shortcut, ErrCodeDuplicateShortcut)
			continue
		}
		owners[shortcut] = id
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
