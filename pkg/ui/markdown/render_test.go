package markdown

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

func plainLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ansi.Strip(line)
	}
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    []string
	}{
		{"heading", "# Itinerary", 40, []string{"Itinerary"}},
		{"wraps words", "one two three four", 9, []string{"one two", "three", "four"}},
		{"styles inside a word", "**Day 1**: arrive", 40, []string{"Day 1: arrive"}},
		{"hanging list indent", "- alpha beta gamma", 12, []string{"• alpha beta", "  gamma"}},
		{"nested list", "  - inner", 20, []string{"  • inner"}},
		{"ordered list", "3. third", 20, []string{"3. third"}},
		{"quote bar", "> Pack light", 20, []string{"│ Pack light"}},
		{"rule fills width", "---", 5, []string{"─────"}},
		{"code padded", "```\nx := 1\n```", 10, []string{"x := 1    "}},
		{"breaks long words", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"blank lines kept", "a\n\nb", 10, []string{"a", "", "b"}},
		{"empty content", "", 10, []string{""}},
		{"table", "| Day | City |\n|---|---|\n| 1 | **Paris** |", 40, []string{
			"| Day | City  |",
			"| --- | ----- |",
			"| 1   | Paris |",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainLines(Render(tt.content, tt.width))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Render(%q, %d) = %q, want %q", tt.content, tt.width, got, tt.want)
			}
		})
	}
}

func TestRenderRespectsWidth(t *testing.T) {
	content := "# A very long heading that must wrap somewhere\n" +
		"- **Day 1**: Arrive at Charles de Gaulle and take the RER into the city center\n" +
		"> Remember to validate your metro tickets before boarding\n" +
		"| Attraction | Notes |\n|---|---|\n| Louvre | Book timed entry well ahead of the visit |"

	const width = 24
	for _, line := range plainLines(Render(content, width)) {
		if w := runewidth.StringWidth(line); w > width {
			t.Fatalf("Line %q is %d cells wide, limit %d", line, w, width)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	content := "# Plan\n\n1. **Louvre** in the _morning_\n2. Seine cruise\n\n```\ncheck-in 15:00\n```"
	first := Render(content, 30)
	second := Render(content, 30)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Expected identical renders, got\n%q\n%q", first, second)
	}
}

func TestRenderZeroWidthDoesNotPanic(t *testing.T) {
	lines := Render("# Title\n| a | b |\nsome text", 0)
	if len(lines) == 0 {
		t.Fatal("Expected rendered lines")
	}
}

func TestRenderString(t *testing.T) {
	got := ansi.Strip(RenderString("a\nb", 10))
	if got != "a\nb" {
		t.Fatalf("Expected joined lines, got %q", got)
	}
	if strings.Contains(got, "**") {
		t.Fatal("Expected markers to be consumed")
	}
}
