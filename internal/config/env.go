package config

import (
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYCHORD_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envMapping maps environment variables to option paths.
var envMapping = map[string]string{
	EnvPrefix + "TIMEOUT":             "options.timeout",
	EnvPrefix + "LOG_LEVEL":           "options.log_level",
	EnvPrefix + "IGNORE_WHEN_FOCUSED": "options.ignore_when_focused",
	EnvPrefix + "PLATFORM":            "options.platform",
	EnvPrefix + "REJECT_DUPLICATES":   "options.reject_duplicates",
}

// EnvVars returns the recognized environment variable names, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides options from environment variables.
// Note: an empty value is a value, not unset; an empty
// KEYCHORD_IGNORE_WHEN_FOCUSED clears the extra tags.
func (k *Keyset) ApplyEnv(lookup LookupFunc) error {
	var errs ValidationErrors
	for _, name := range EnvVars() {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		path := envMapping[name]

		switch path {
		case "options.timeout":
			d, err := toDuration(val)
			if err != nil {
				errs = append(errs, &ValidationError{Path: name, Message: err.Error(), Value: val, Code: ErrCodeTypeMismatch})
				continue
			}
			k.Options.Timeout = d
		case "options.log_level":
			k.Options.LogLevel = val
		case "options.platform":
			k.Options.Platform = val
		case "options.ignore_when_focused":
			k.Options.IgnoreWhenFocused = splitList(val)
		case "options.reject_duplicates":
			b, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				errs = append(errs, &ValidationError{Path: name, Message: "expected a boolean", Value: val, Code: ErrCodeTypeMismatch})
				continue
			}
			k.Options.RejectDuplicates = b
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
