package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestExportJSONLoadsBack(t *testing.T) {
	ks := Default()
	ks.Options.Timeout = 300 * time.Millisecond
	ks.Options.IgnoreWhenFocused = []string{"select"}
	ks.Actions["search"] = ActionConfig{Name: "Search", Shortcut: []string{"$mod+k"}, Section: "Nav"}
	ks.Actions["nav.top"] = ActionConfig{Shortcut: []string{"g", "g"}, Script: `log("top")`}
	ks.Actions["bare"] = ActionConfig{}

	data, err := ks.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	if got := gjson.GetBytes(data, `actions.nav\.top.shortcut.1`).String(); got != "g" {
		t.Errorf("dotted id not escaped, got %q in %s", got, data)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("output not indented: %s", data)
	}

	back, err := Parse(data, FormatJSON, "export")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(back.Options, ks.Options) {
		t.Errorf("Options = %+v, want %+v", back.Options, ks.Options)
	}
	if !reflect.DeepEqual(back.Actions, ks.Actions) {
		t.Errorf("Actions = %+v, want %+v", back.Actions, ks.Actions)
	}
}

func TestFilter(t *testing.T) {
	ks := Default()
	ks.Actions["nav.top"] = ActionConfig{Shortcut: []string{"g g"}}
	ks.Actions["nav.bottom"] = ActionConfig{Shortcut: []string{"G"}}
	ks.Actions["save"] = ActionConfig{Shortcut: []string{"$mod+s"}}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"nav.bottom", "nav.top", "save"}},
		{"nav.*", []string{"nav.bottom", "nav.top"}},
		{"?ave", []string{"save"}},
		{"none", []string{}},
	}

	for _, tt := range tests {
		got := ks.Filter(tt.pattern).ActionIDs()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Filter(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
	if len(ks.Actions) != 3 {
		t.Error("Filter modified the original keyset")
	}
}
