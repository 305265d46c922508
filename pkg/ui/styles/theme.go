// Package styles provides the shared theme for the trip planner UI so every
// component renders with the same palette.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (teal)
	ColorAccent = lipgloss.Color("37")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")

	// Code/syntax colors
	ColorCode        = lipgloss.Color("213")
	ColorCodeBg      = lipgloss.Color("235")
	ColorPlaceholder = lipgloss.Color("240")

	// Conversation roles
	ColorUser  = lipgloss.Color("75")
	ColorAgent = lipgloss.Color("141")

	// Border colors
	ColorBorder      = lipgloss.Color("37")
	ColorBorderMuted = lipgloss.Color("240")
)

// Panel/Box styles
var (
	// BoxStyle is the rounded frame for an unfocused panel
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)

	// BoxFocusedStyle frames the panel holding focus
	BoxFocusedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// DropdownStyle frames an open city list
	DropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorAccent)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	TextItalicStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	TextBoldItalicStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true).
				Italic(true)
)

// Markdown block styles
var (
	HeadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// SubheadingStyle is used for heading levels 3 and below
	SubheadingStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	QuoteStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	QuoteBarStyle = lipgloss.NewStyle().
			Foreground(ColorBorderMuted)

	ListMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	RuleStyle = lipgloss.NewStyle().
			Foreground(ColorBorderMuted)
)

// Selection and highlighting
var (
	// SelectedStyle for the highlighted dropdown row
	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorTextBright).
		Background(ColorAccent).
		Bold(true)
)

// Input and form styles
var (
	// LabelStyle for form labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Width(14)

	// LabelFocusedStyle marks the label of the focused field
	LabelFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Width(14)

	// ValueStyle for chosen values
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// FilterStyle for the dropdown search input
	FilterStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	// PlaceholderStyle for placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorTextBright).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// Conversation styles
var (
	UserLabelStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	AgentLabelStyle = lipgloss.NewStyle().
			Foreground(ColorAgent).
			Bold(true)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Code styles
var (
	CodeStyle = lipgloss.NewStyle().
		Foreground(ColorCode).
		Background(ColorCodeBg)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#00897B")).
			Padding(0, 1).
			Bold(true)

	// StatusBarBusyStyle is shown while a request is outstanding
	StatusBarBusyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1C1C1C")).
				Background(lipgloss.Color("#FFB300")).
				Padding(0, 1).
				Bold(true)
)

// Header styles
var (
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("219")).
				Bold(true)

	HeaderVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))

	HeaderRuleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))
)
