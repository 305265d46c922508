// Package planpanel shows the latest plan text as scrollable markdown.
package planpanel

import (
	"log/slog"
	"strings"

	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/markdown"
	"tripplanner/pkg/ui/styles"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	Title = "Your Trip Plan Details:"

	boxBorderSize = 1
	boxPaddingH   = 1
	footerLabel   = "Up/Down Scroll | y Copy"
)

// CopiedMsg reports that the plan text was sent to the clipboard.
type CopiedMsg struct{}

// Panel renders plan text in a bordered viewport.
type Panel struct {
	text     string
	viewport viewport.Model
	focused  bool
	width    int
	height   int
}

// New creates an empty panel.
func New() *Panel {
	return &Panel{
		viewport: viewport.New(viewport.WithWidth(40), viewport.WithHeight(5)),
	}
}

// SetText replaces the plan text and scrolls to the top.
func (p *Panel) SetText(text string) {
	if text == p.text {
		return
	}
	p.text = text
	p.refresh()
	p.viewport.GotoTop()
}

// Text returns the raw plan text.
func (p *Panel) Text() string {
	return p.text
}

// IsVisible reports whether there is a plan to show.
func (p *Panel) IsVisible() bool {
	return p.text != ""
}

// Focus gives the panel keyboard focus.
func (p *Panel) Focus() {
	p.focused = true
}

// Blur removes keyboard focus.
func (p *Panel) Blur() {
	p.focused = false
}

// Focused reports whether the panel holds focus.
func (p *Panel) Focused() bool {
	return p.focused
}

// SetSize sets the outer box dimensions.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(p.contentWidth())
	p.viewport.SetHeight(p.viewportHeight())
	p.refresh()
}

// Update scrolls or copies while focused.
func (p *Panel) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !p.focused || !p.IsVisible() {
		return nil
	}

	switch msg.String() {
	case "y":
		return p.copyToClipboard()
	case "home":
		p.viewport.GotoTop()
		return nil
	case "end":
		p.viewport.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// YOffset returns the current scroll position.
func (p *Panel) YOffset() int {
	return p.viewport.YOffset()
}

// copyToClipboard writes the OSC 52 sequence through the program's output.
func (p *Panel) copyToClipboard() tea.Cmd {
	slog.Info("plan_copy", "length", len(p.text))
	return tea.Batch(
		tea.Raw(osc52.New(p.text).String()),
		func() tea.Msg { return CopiedMsg{} },
	)
}

func (p *Panel) refresh() {
	p.viewport.SetContent(markdown.RenderString(p.text, p.contentWidth()))
}

// View renders the panel, or "" when there is no plan.
func (p *Panel) View() string {
	if !p.IsVisible() {
		return ""
	}

	contentWidth := p.contentWidth()
	lines := []string{styles.TitleStyle.Render(utils.TruncateToWidth(Title, contentWidth))}
	lines = append(lines, utils.ClampLines(strings.Split(p.viewport.View(), "\n"), p.viewportHeight())...)
	lines = append(lines, styles.FooterStyle.Render(utils.TruncateToWidth(footerLabel, contentWidth)))

	box := styles.BoxStyle
	if p.focused {
		box = styles.BoxFocusedStyle
	}
	width := p.width
	if width < 1 {
		width = 1
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (p *Panel) contentWidth() int {
	width := p.width - 2*(boxBorderSize+boxPaddingH)
	if width < 1 {
		return 1
	}
	return width
}

func (p *Panel) viewportHeight() int {
	// title and footer
	height := p.height - 2*boxBorderSize - 2
	if height < 1 {
		return 1
	}
	return height
}
