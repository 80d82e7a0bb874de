package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keychord/internal/input/sequence"
)

// Options holds the matching options of a keyset.
type Options struct {
	// Timeout is the maximum gap between chords of a sequence.
	Timeout time.Duration

	// IgnoreWhenFocused lists extra tag names treated as text inputs.
	IgnoreWhenFocused []string

	// Platform is "auto", "apple" or "other".
	Platform string

	// RejectDuplicates makes duplicate shortcuts a validation error.
	RejectDuplicates bool

	// LogLevel is the minimum log level.
	LogLevel string
}

// ActionConfig is one action entry of a keyset.
type ActionConfig struct {
	Name        string
	Shortcut    []string
	Description string
	Section     string
	Script      string
}

// Keyset is a loaded keyset file.
type Keyset struct {
	// Source is the file the keyset was loaded from, if any.
	Source string

	Options Options

	// Actions maps action IDs to their configuration.
	Actions map[string]ActionConfig
}

// Default returns an empty keyset with default options.
func Default() *Keyset {
	return &Keyset{
		Options: Options{
			Timeout:  sequence.DefaultTimeout,
			Platform: "auto",
			LogLevel: "info",
		},
		Actions: make(map[string]ActionConfig),
	}
}

// ActionIDs returns the action IDs in sorted order.
func (k *Keyset) ActionIDs() []string {
	ids := make([]string, 0, len(k.Actions))
	for id := range k.Actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// decode builds a keyset from a format-neutral map, filling defaults for
// missing settings. Unknown keys are ignored.
func decode(source string, raw map[string]any) (*Keyset, error) {
	ks := Default()
	ks.Source = source

	var errs ValidationErrors
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v, Code: ErrCodeTypeMismatch})
	}

	if v, ok := raw["options"]; ok {
		opts, ok := v.(map[string]any)
		if !ok {
			fail("options", "expected a table", v)
		} else {
			decodeOptions(&ks.Options, opts, fail)
		}
	}

	if v, ok := raw["actions"]; ok {
		actions, ok := v.(map[string]any)
		if !ok {
			fail("actions", "expected a table", v)
		} else {
			for id, av := range actions {
				path := "actions." + id
				fields, ok := av.(map[string]any)
				if !ok {
					fail(path, "expected a table", av)
					continue
				}
				ks.Actions[id] = decodeAction(path, fields, fail)
			}
		}
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
		return nil, errs
	}
	return ks, nil
}

type failFunc func(path, msg string, v any)

func decodeOptions(o *Options, m map[string]any, fail failFunc) {
	if v, ok := m["timeout"]; ok {
		d, err := toDuration(v)
		if err != nil {
			fail("options.timeout", err.Error(), v)
		} else {
			o.Timeout = d
		}
	}
	if v, ok := m["ignore_when_focused"]; ok {
		tags, err := toStrings(v)
		if err != nil {
			fail("options.ignore_when_focused", err.Error(), v)
		} else {
			o.IgnoreWhenFocused = tags
		}
	}
	if v, ok := m["platform"]; ok {
		if s, ok := v.(string); ok {
			o.Platform = s
		} else {
			fail("options.platform", "expected a string", v)
		}
	}
	if v, ok := m["reject_duplicates"]; ok {
		if b, ok := v.(bool); ok {
			o.RejectDuplicates = b
		} else {
			fail("options.reject_duplicates", "expected a boolean", v)
		}
	}
	if v, ok := m["log_level"]; ok {
		if s, ok := v.(string); ok {
			o.LogLevel = s
		} else {
			fail("options.log_level", "expected a string", v)
		}
	}
}

func decodeAction(path string, m map[string]any, fail failFunc) ActionConfig {
	var a ActionConfig
	str := func(name string, dst *string) {
		v, ok := m[name]
		if !ok {
			return
		}
		s, ok := v.(string)
		if !ok {
			fail(path+"."+name, "expected a string", v)
			return
		}
		*dst = s
	}
	str("name", &a.Name)
	str("description", &a.Description)
	str("section", &a.Section)
	str("script", &a.Script)

	if v, ok := m["shortcut"]; ok {
		chords, err := toStrings(v)
		if err != nil {
			fail(path+".shortcut", err.Error(), v)
		} else {
			a.Shortcut = chords
		}
	}
	return a
}

// toDuration accepts a duration string ("400ms", "1s"), a string of digits
// or a number, the latter two in milliseconds.
func toDuration(v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Duration(n) * time.Millisecond, nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", t)
		}
		return d, nil
	case int:
		return time.Duration(t) * time.Millisecond, nil
	case int64:
		return time.Duration(t) * time.Millisecond, nil
	case uint64:
		return time.Duration(t) * time.Millisecond, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("milliseconds must be a whole number")
		}
		return time.Duration(t) * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("expected a duration, got %T", v)
	}
}

// toStrings accepts a string or a list of strings.
func toStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: expected a string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a string or list of strings, got %T", v)
	}
}
