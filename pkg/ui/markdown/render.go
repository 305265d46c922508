package markdown

import (
	"strings"
	"unicode"

	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const quoteBar = "│ "

// piece is a styled fragment of a word.
type piece struct {
	text string
	span Span
}

// word is a run of non-space text that may mix styles, as in "**Day 1**:".
type word []piece

func (w word) width() int {
	total := 0
	for _, p := range w {
		total += runewidth.StringWidth(p.text)
	}
	return total
}

// Render formats content as styled lines no wider than width.
func Render(content string, width int) []string {
	if width <= 0 {
		width = 1
	}

	var rendered []string
	for _, block := range Parse(content) {
		rendered = append(rendered, renderBlock(block, width)...)
	}

	if len(rendered) == 0 {
		return []string{""}
	}
	return rendered
}

// RenderString is Render joined with newlines.
func RenderString(content string, width int) string {
	return strings.Join(Render(content, width), "\n")
}

func renderBlock(block Block, width int) []string {
	switch block.Kind {
	case KindBlank:
		return []string{""}
	case KindHeading:
		base := styles.HeadingStyle
		if block.Level > 2 {
			base = styles.SubheadingStyle
		}
		if len(block.Spans) == 0 {
			return []string{""}
		}
		return wrapWords(splitWords(block.Spans), width, base)
	case KindListItem:
		return renderListItem(block, width)
	case KindQuote:
		return renderQuote(block, width)
	case KindCode:
		return renderCodeLine(block.Raw, width)
	case KindTable:
		return renderTable(block.Rows, width)
	case KindRule:
		return []string{styles.RuleStyle.Render(strings.Repeat("─", width))}
	default:
		return wrapWords(splitWords(block.Spans), width, styles.TextStyle)
	}
}

func renderListItem(block Block, width int) []string {
	indent := strings.Repeat("  ", block.Level)
	marker := block.Marker + " "
	hang := runewidth.StringWidth(indent) + runewidth.StringWidth(marker)

	bodyWidth := width - hang
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	body := wrapWords(splitWords(block.Spans), bodyWidth, styles.TextStyle)
	lines := make([]string, 0, len(body))
	for i, line := range body {
		if i == 0 {
			lines = append(lines, indent+styles.ListMarkerStyle.Render(marker)+line)
			continue
		}
		lines = append(lines, strings.Repeat(" ", hang)+line)
	}
	return lines
}

func renderQuote(block Block, width int) []string {
	barWidth := runewidth.StringWidth(quoteBar)
	bodyWidth := width - barWidth
	if bodyWidth < 1 {
		bodyWidth = 1
	}

	body := wrapWords(splitWords(block.Spans), bodyWidth, styles.QuoteStyle)
	lines := make([]string, 0, len(body))
	for _, line := range body {
		lines = append(lines, styles.QuoteBarStyle.Render(quoteBar)+line)
	}
	return lines
}

func splitWords(spans []Span) []word {
	var words []word
	var current word

	for _, span := range spans {
		for _, r := range span.Text {
			if unicode.IsSpace(r) && !span.Code {
				if len(current) > 0 {
					words = append(words, current)
					current = nil
				}
				continue
			}
			if n := len(current); n > 0 && current[n-1].span == withoutText(span) {
				current[n-1].text += string(r)
				continue
			}
			current = append(current, piece{text: string(r), span: withoutText(span)})
		}
	}
	if len(current) > 0 {
		words = append(words, current)
	}
	return words
}

func withoutText(span Span) Span {
	span.Text = ""
	return span
}

func wrapWords(words []word, width int, base lipgloss.Style) []string {
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line []word
	lineWidth := 0

	flush := func() {
		lines = append(lines, renderWordLine(line, base))
		line = nil
		lineWidth = 0
	}

	for _, w := range words {
		for _, part := range breakWord(w, width) {
			partWidth := part.width()
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				flush()
			}
			if lineWidth > 0 {
				lineWidth++
			}
			line = append(line, part)
			lineWidth += partWidth
		}
	}
	if len(line) > 0 {
		flush()
	}
	return lines
}

// breakWord splits a word wider than width into chunks that fit.
func breakWord(w word, width int) []word {
	if w.width() <= width {
		return []word{w}
	}

	var chunks []word
	var current word
	currentWidth := 0
	for _, p := range w {
		for _, r := range p.text {
			rw := runewidth.RuneWidth(r)
			if currentWidth+rw > width && currentWidth > 0 {
				chunks = append(chunks, current)
				current = nil
				currentWidth = 0
			}
			if n := len(current); n > 0 && current[n-1].span == p.span {
				current[n-1].text += string(r)
			} else {
				current = append(current, piece{text: string(r), span: p.span})
			}
			currentWidth += rw
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}

func renderWordLine(words []word, base lipgloss.Style) string {
	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			sb.WriteString(base.Render(" "))
		}
		for _, p := range w {
			sb.WriteString(pieceStyle(base, p.span).Render(p.text))
		}
	}
	return sb.String()
}

func pieceStyle(base lipgloss.Style, span Span) lipgloss.Style {
	if span.Code {
		return styles.CodeStyle
	}
	style := base
	if span.Strong {
		style = style.Bold(true)
	}
	if span.Emph {
		style = style.Italic(true)
	}
	return style
}

func renderCodeLine(line string, width int) []string {
	if line == "" {
		return []string{styles.CodeStyle.Render(utils.PadPlain("", width))}
	}

	parts := utils.SplitByWidth(line, width)
	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, styles.CodeStyle.Render(utils.PadPlain(part, width)))
	}
	return lines
}

func renderTable(source [][]string, width int) []string {
	cols := 0
	for _, row := range source {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return []string{""}
	}

	// Cells are shown as plain text; inline markers would skew the widths.
	rows := make([][]string, len(source))
	for i, row := range source {
		rows[i] = make([]string, cols)
		for j, cell := range row {
			rows[i][j] = PlainText(ParseInline(cell))
		}
	}

	colWidths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	fixedWidth := 3*cols + 1
	maxContent := width - fixedWidth
	if maxContent < cols {
		return renderTableFallback(rows, width)
	}
	colWidths = fitColumnWidths(colWidths, maxContent)

	var rendered []string
	for rowIndex, row := range rows {
		line := utils.TrimToWidth(buildTableLine(row, colWidths), width)
		if rowIndex == 0 {
			rendered = append(rendered, styles.TextBoldStyle.Render(line))
			rendered = append(rendered, styles.RuleStyle.Render(buildTableSeparator(colWidths)))
			continue
		}
		rendered = append(rendered, styles.TextStyle.Render(line))
	}
	return rendered
}

func renderTableFallback(rows [][]string, width int) []string {
	rendered := make([]string, 0, len(rows))
	for _, row := range rows {
		line := utils.TrimToWidth(strings.Join(row, " | "), width)
		rendered = append(rendered, styles.TextStyle.Render(line))
	}
	return rendered
}

func buildTableLine(row []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		sb.WriteString(" ")
		sb.WriteString(utils.PadPlain(utils.TrimToWidth(cell, widths[i]), widths[i]))
		sb.WriteString(" |")
	}
	return sb.String()
}

func buildTableSeparator(widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, w := range widths {
		if w < 1 {
			w = 1
		}
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}
	return sb.String()
}

// fitColumnWidths shrinks the widest column one cell at a time until the
// total fits.
func fitColumnWidths(widths []int, maxContent int) []int {
	out := make([]int, len(widths))
	total := 0
	for i, w := range widths {
		if w < 1 {
			w = 1
		}
		out[i] = w
		total += w
	}

	for total > maxContent {
		maxIdx := -1
		maxVal := 1
		for i, w := range out {
			if w > maxVal {
				maxVal = w
				maxIdx = i
			}
		}
		if maxIdx == -1 {
			break
		}
		out[maxIdx]--
		total--
	}
	return out
}
