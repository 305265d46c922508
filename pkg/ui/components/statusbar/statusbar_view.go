// Package statusbar renders the bottom status line: the query endpoint, the
// current activity and the key hints for the focused area.
package statusbar

import (
	"fmt"
	"strings"

	"tripplanner/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const (
	appLabel    = "[tripplanner]"
	defaultHint = "Tab Next | Shift+Tab Prev | Ctrl+P Plan | Ctrl+C Quit"
)

// StatusBarView handles the status bar rendering with Lipgloss
type StatusBarView struct {
	endpoint string
	message  string
	hint     string
	busy     bool
	width    int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		hint:  defaultHint,
		width: 80,
	}
}

// SetEndpoint sets the query endpoint shown on the left.
func (s *StatusBarView) SetEndpoint(endpoint string) {
	s.endpoint = strings.TrimSpace(endpoint)
}

// SetMessage sets a temporary message that replaces the key hints.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
}

// SetHint sets the key hints for the focused area. Empty restores the
// default hints.
func (s *StatusBarView) SetHint(hint string) {
	if strings.TrimSpace(hint) == "" {
		hint = defaultHint
	}
	s.hint = hint
}

// SetBusy switches the bar to the busy style while a request is outstanding.
func (s *StatusBarView) SetBusy(busy bool) {
	s.busy = busy
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar string
func (s *StatusBarView) Render() string {
	endpoint := s.endpoint
	if endpoint == "" {
		endpoint = "no endpoint"
	}

	tail := s.hint
	if s.message != "" {
		tail = s.message
	}
	content := fmt.Sprintf("%s %s | %s", appLabel, endpoint, tail)

	// Truncate if too long (ANSI-aware width).
	maxWidth := s.width - 2
	if maxWidth < 10 {
		maxWidth = 10
	}
	if ansi.StringWidth(content) > maxWidth {
		content = ansi.Truncate(content, maxWidth, "...")
	}

	style := styles.StatusBarStyle
	if s.busy {
		style = styles.StatusBarBusyStyle
	}
	styled := style.Render(content)

	if rendered := ansi.StringWidth(styled); rendered < s.width {
		styled += strings.Repeat(" ", s.width-rendered)
	}
	return styled
}
