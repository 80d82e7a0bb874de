package config

import (
	"errors"
	"testing"
	"time"
)

func TestValidateCollectsEveryProblem(t *testing.T) {
	ks := Default()
	ks.Options.Timeout = 0
	ks.Options.Platform = "amiga"
	ks.Options.LogLevel = "loud"
	ks.Actions["bad"] = ActionConfig{Shortcut: []string{"Hyper+k"}}
	ks.Actions["ok"] = ActionConfig{Shortcut: []string{"$mod+k"}}
	ks.Actions["empty"] = ActionConfig{}

	err := ks.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}

	codes := make(map[string]ValidationErrorCode)
	for _, e := range verrs {
		codes[e.Path] = e.Code
	}
	want := map[string]ValidationErrorCode{
		"options.timeout":      ErrCodeOutOfRange,
		"options.platform":     ErrCodeInvalidEnum,
		"options.log_level":    ErrCodeInvalidEnum,
		"actions.bad.shortcut": ErrCodeInvalidShortcut,
	}
	if len(codes) != len(want) {
		t.Fatalf("got %v, want %v", codes, want)
	}
	for path, code := range want {
		if codes[path] != code {
			t.Errorf("%s: code = %v, want %v", path, codes[path], code)
		}
	}

	var single *ValidationError
	if !errors.As(err, &single) {
		t.Error("errors.As(*ValidationError) failed")
	}
}

func TestValidateDuplicates(t *testing.T) {
	ks := Default()
	ks.Actions["alpha"] = ActionConfig{Shortcut: []string{"g", "g"}}
	ks.Actions["beta"] = ActionConfig{Shortcut: []string{"g g"}}

	if err := ks.Validate(); err != nil {
		t.Fatalf("duplicates allowed by default, got %v", err)
	}

	ks.Options.RejectDuplicates = true
	err := ks.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 1 {
		t.Fatalf("err = %v, want one ValidationError", err)
	}
	if verrs[0].Path != "actions.beta.shortcut" || verrs[0].Code != ErrCodeDuplicateShortcut {
		t.Errorf("got %+v", verrs[0])
	}
}

func TestValidateDefaults(t *testing.T) {
	ks := Default()
	ks.Options.Timeout = time.Second
	if err := ks.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
