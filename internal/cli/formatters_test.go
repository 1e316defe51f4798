package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ruoyu-qian/typedeck/pkg/diff"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short enough", input: "hola", maxLen: 10, want: "hola"},
		{name: "truncated", input: "abcdefghij", maxLen: 8, want: "abcde..."},
		{name: "tiny max", input: "abcdef", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 512, want: "512 B"},
		{bytes: 2048, want: "2.0 KB"},
		{bytes: 1536, want: "1.5 KB"},
		{bytes: 3 * 1024 * 1024, want: "3.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestOutputResults(t *testing.T) {
	data := map[string]string{"deck": "Spanish"}

	var buf bytes.Buffer
	if err := OutputResults(&buf, "json", data); err != nil {
		t.Fatalf("OutputResults(json) error = %v", err)
	}
	if !strings.Contains(buf.String(), `"deck": "Spanish"`) {
		t.Errorf("json output missing data: %q", buf.String())
	}

	buf.Reset()
	if err := OutputResults(&buf, "yaml", data); err != nil {
		t.Fatalf("OutputResults(yaml) error = %v", err)
	}
	if !strings.Contains(buf.String(), "deck: Spanish") {
		t.Errorf("yaml output missing data: %q", buf.String())
	}

	if err := OutputResults(&buf, "csv", data); err == nil {
		t.Error("unsupported format did not error")
	}
}

func TestRenderDiffText(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	segs := []diff.Segment{
		{Op: diff.Equal, Text: "hol"},
		{Op: diff.Bad, Text: "o"},
		{Op: diff.Missing, Text: "a"},
	}

	// With color disabled the runs concatenate back into plain text.
	if got := RenderDiffText(segs); got != "holoa" {
		t.Errorf("RenderDiffText() = %q, want %q", got, "holoa")
	}
}

func TestColorizeTagStable(t *testing.T) {
	a := ColorizeTag("spanish")
	b := ColorizeTag("spanish")
	if a != b {
		t.Errorf("ColorizeTag() is not stable: %q vs %q", a, b)
	}
}
