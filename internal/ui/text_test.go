package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	color.NoColor = false

	result := Code.Sprint("rdc store list prod")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "rdc queue list", "`rdc queue list`"},
		{"Path has no decoration", Path, "vaults/team/ops.json.enc", "vaults/team/ops.json.enc"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "cluster", "'cluster'"},
		{"Muted adds parentheses", Muted, "v3", "(v3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if got := Highlight.Sprintf("%s/%s", "prod", "cluster"); got != "'prod/cluster'" {
		t.Errorf("Highlight.Sprintf() = %q", got)
	}
}

func TestStatus(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	for _, status := range []string{"PENDING", "ACTIVE", "COMPLETED", "FAILED", "CANCELLED", "UNKNOWN"} {
		if got := Status(status); got != status {
			t.Errorf("Status(%q) = %q without color", status, got)
		}
	}

	os.Unsetenv("NO_COLOR")
	color.NoColor = false
	if got := Status("FAILED"); !strings.Contains(got, "\x1b[") {
		t.Errorf("Status(FAILED) should be colored, got %q", got)
	}
	if got := Status("UNKNOWN"); got != "UNKNOWN" {
		t.Errorf("Status(UNKNOWN) = %q, want it unchanged", got)
	}
}

func TestCheck(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if Check(true) != "✓" || Check(false) != "✗" {
		t.Errorf("Check() = %q / %q", Check(true), Check(false))
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := map[string]string{"": "\n", "done": "done\n", "done\n": "done\n"}
	for in, want := range tests {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
