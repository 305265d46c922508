// Package markdown turns agent response text into terminal lines.
//
// Parsing is line oriented and covers what the agent emits in practice:
// headings, bullet and numbered lists, block quotes, fenced code, pipe
// tables, rules, paragraphs, and inline strong/emphasis/code. Parse is pure,
// so rendering the same text twice yields the same structure.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Kind is the type of a block.
type Kind int

const (
	KindBlank Kind = iota
	KindParagraph
	KindHeading
	KindListItem
	KindQuote
	KindCode
	KindTable
	KindRule
)

var kindNames = map[Kind]string{
	KindBlank:     "blank",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindListItem:  "item",
	KindQuote:     "quote",
	KindCode:      "code",
	KindTable:     "table",
	KindRule:      "rule",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Span is a run of inline text sharing one set of styles.
type Span struct {
	Text   string
	Strong bool
	Emph   bool
	Code   bool
}

// Block is one parsed line-level element.
type Block struct {
	Kind  Kind
	Level int // heading level, or list nesting depth
	// Marker is the list bullet as displayed ("•" or "3.").
	Marker string
	Spans  []Span
	Raw    string     // code line
	Rows   [][]string // table cells, header row first
}

var (
	headingPattern   = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+(.*?)(?:\s+#+)?\s*$`)
	bulletPattern    = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	orderedPattern   = regexp.MustCompile(`^(\s*)(\d{1,9})[.)]\s+(.*)$`)
	quotePattern     = regexp.MustCompile(`^\s{0,3}>\s?(.*)$`)
	rulePattern      = regexp.MustCompile(`^\s{0,3}(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	linkPattern      = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	emptyHeadingText = regexp.MustCompile(`^#+$`)
)

// Parse splits text into blocks.
func Parse(content string) []Block {
	lines := splitLines(content)

	var blocks []Block
	inCode := false

	for i := 0; i < len(lines); i++ {
		line := strings.ReplaceAll(lines[i], "\t", "    ")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCode = !inCode
			continue
		}
		if inCode {
			blocks = append(blocks, Block{Kind: KindCode, Raw: line})
			continue
		}

		if trimmed == "" {
			blocks = append(blocks, Block{Kind: KindBlank})
			continue
		}

		if startsTable(lines, i) {
			start := i
			for i < len(lines) && isTableRow(lines[i]) {
				i++
			}
			i--
			blocks = append(blocks, parseTable(lines[start:i+1]))
			continue
		}

		blocks = append(blocks, parseLine(line))
	}

	return blocks
}

func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = sanitizeContent(normalized)
	normalized = strings.ReplaceAll(normalized, "<br>", "\n")
	normalized = strings.ReplaceAll(normalized, "<br/>", "\n")
	normalized = strings.ReplaceAll(normalized, "<br />", "\n")
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, "\n")
}

func parseLine(line string) Block {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		text := m[2]
		if emptyHeadingText.MatchString(text) {
			text = ""
		}
		return Block{Kind: KindHeading, Level: len(m[1]), Spans: ParseInline(text)}
	}
	if rulePattern.MatchString(line) {
		return Block{Kind: KindRule}
	}
	if m := quotePattern.FindStringSubmatch(line); m != nil {
		// Nested quotes collapse into one level.
		text := strings.TrimLeft(m[1], "> ")
		return Block{Kind: KindQuote, Spans: ParseInline(text)}
	}
	if m := orderedPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:   KindListItem,
			Level:  indentDepth(m[1]),
			Marker: m[2] + ".",
			Spans:  ParseInline(m[3]),
		}
	}
	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Block{
			Kind:   KindListItem,
			Level:  indentDepth(m[1]),
			Marker: "•",
			Spans:  ParseInline(m[2]),
		}
	}
	return Block{Kind: KindParagraph, Spans: ParseInline(strings.TrimSpace(line))}
}

func indentDepth(indent string) int {
	return len(indent) / 2
}

// ParseInline splits a line into styled spans. Unclosed markers toggle
// until the end of the line.
func ParseInline(text string) []Span {
	text = linkPattern.ReplaceAllString(text, "$1")
	runes := []rune(text)

	var spans []Span
	var sb strings.Builder
	var strong, emph, code bool

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		spans = appendSpan(spans, Span{Text: sb.String(), Strong: strong, Emph: emph, Code: code})
		sb.Reset()
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '`' {
			flush()
			code = !code
			continue
		}
		if code {
			sb.WriteRune(r)
			continue
		}

		if r == '\\' && i+1 < len(runes) && strings.ContainsRune("\\`*_#>[]-", runes[i+1]) {
			sb.WriteRune(runes[i+1])
			i++
			continue
		}

		if (r == '*' || r == '_') && i+1 < len(runes) && runes[i+1] == r {
			if !isDelimiter(runes, i, 2, strong) {
				sb.WriteString(string([]rune{r, r}))
				i++
				continue
			}
			flush()
			strong = !strong
			i++
			continue
		}

		if (r == '*' || r == '_') && isDelimiter(runes, i, 1, emph) {
			flush()
			emph = !emph
			continue
		}

		sb.WriteRune(r)
	}
	flush()

	return spans
}

// isDelimiter reports whether a marker run of the given size at i can close
// emphasis (when closing) or open it. An opener must be followed by
// non-space text and a closer preceded by it, so "5 * 3" stays literal.
// Underscores must also sit outside words, as in snake_case.
func isDelimiter(runes []rune, i, size int, closing bool) bool {
	after := i + size
	if closing {
		if i == 0 || unicode.IsSpace(runes[i-1]) {
			return false
		}
		return runes[i] == '*' || after >= len(runes) || !isWordRune(runes[after])
	}
	if after >= len(runes) || unicode.IsSpace(runes[after]) {
		return false
	}
	return runes[i] == '*' || i == 0 || !isWordRune(runes[i-1])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func appendSpan(spans []Span, span Span) []Span {
	if n := len(spans); n > 0 {
		last := spans[n-1]
		if last.Strong == span.Strong && last.Emph == span.Emph && last.Code == span.Code {
			spans[n-1].Text += span.Text
			return spans
		}
	}
	return append(spans, span)
}

// PlainText returns the concatenated span text.
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// Outline renders blocks as an unstyled structural dump, one block per line.
func Outline(blocks []Block) string {
	var sb strings.Builder
	for _, block := range blocks {
		sb.WriteString(block.Kind.String())
		switch block.Kind {
		case KindHeading:
			fmt.Fprintf(&sb, " %d: %s", block.Level, outlineSpans(block.Spans))
		case KindListItem:
			fmt.Fprintf(&sb, " %d %s %s", block.Level, block.Marker, outlineSpans(block.Spans))
		case KindParagraph, KindQuote:
			fmt.Fprintf(&sb, ": %s", outlineSpans(block.Spans))
		case KindCode:
			fmt.Fprintf(&sb, ": %s", block.Raw)
		case KindTable:
			for i, row := range block.Rows {
				sep := " | "
				if i == 0 {
					sep = ": "
				}
				sb.WriteString(sep)
				sb.WriteString(strings.Join(row, ", "))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func outlineSpans(spans []Span) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		var tags []string
		if span.Strong {
			tags = append(tags, "strong")
		}
		if span.Emph {
			tags = append(tags, "em")
		}
		if span.Code {
			tags = append(tags, "code")
		}
		if len(tags) == 0 {
			parts = append(parts, span.Text)
			continue
		}
		parts = append(parts, "["+strings.Join(tags, "+")+":"+span.Text+"]")
	}
	return strings.Join(parts, "")
}

func sanitizeContent(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isTableRow(line string) bool {
	if strings.Count(line, "|") < 2 {
		return false
	}
	cells := splitTableRow(line)
	if len(cells) < 2 {
		return false
	}
	for _, cell := range cells {
		if cell != "" {
			return true
		}
	}
	return false
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		clean := strings.Trim(cell, ":")
		if len(clean) < 3 {
			return false
		}
		if strings.Trim(clean, "-") != "" {
			return false
		}
	}
	return true
}

// startsTable reports whether a header row at i is followed by a dashed
// delimiter row. Pipe rows without one are ordinary text.
func startsTable(lines []string, i int) bool {
	if i+1 >= len(lines) || !isTableRow(lines[i]) || !isTableRow(lines[i+1]) {
		return false
	}
	return isSeparatorRow(splitTableRow(lines[i+1]))
}

// parseTable builds a table block from a header row, its delimiter row and
// any body rows. The delimiter row is dropped.
func parseTable(lines []string) Block {
	rows := make([][]string, 0, len(lines))
	for i, line := range lines {
		if i == 1 {
			continue
		}
		rows = append(rows, splitTableRow(line))
	}
	return Block{Kind: KindTable, Rows: rows}
}
