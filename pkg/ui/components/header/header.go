// Package header renders the application title bar.
package header

import (
	"strings"

	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/styles"
	"tripplanner/pkg/version"

	"github.com/mattn/go-runewidth"
)

// Title is the application heading.
const Title = "Trip Planning Agent"

// Height is the number of lines View returns.
const Height = 2

// View returns the centered title with the version on the right, followed
// by a rule across the full width.
func View(width int) string {
	if width < 1 {
		width = 1
	}

	title := utils.TruncateToWidth(Title, width)
	titleWidth := runewidth.StringWidth(title)
	leftPad := (width - titleWidth) / 2

	line := strings.Repeat(" ", leftPad) + styles.HeaderTitleStyle.Render(title)

	versionText := version.Summary()
	versionWidth := runewidth.StringWidth(versionText)
	if gap := width - leftPad - titleWidth - versionWidth; gap >= 2 {
		line += strings.Repeat(" ", gap) + styles.HeaderVersionStyle.Render(versionText)
	}

	rule := styles.HeaderRuleStyle.Render(strings.Repeat("─", width))
	return line + "\n" + rule
}
