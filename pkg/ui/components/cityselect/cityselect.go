// Package cityselect provides a searchable dropdown over the fixed city table.
package cityselect

import (
	"strings"

	"tripplanner/pkg/trip"
	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

const (
	Placeholder = "Select a city"

	defaultListHeight = 5
	defaultWidth      = 24
)

// Selector is a single city field. While open, typed text filters the
// list and enter picks the highlighted city.
type Selector struct {
	selection trip.Selection
	filter    textinput.Model
	matches   []trip.City
	selected  int
	scroll    int
	open      bool
	focused   bool
	width     int
}

// New creates a closed, unset selector.
func New() *Selector {
	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "Type to search"
	filter.CharLimit = 32

	return &Selector{
		filter: filter,
		width:  defaultWidth,
	}
}

// Selection returns the current choice.
func (s *Selector) Selection() trip.Selection {
	return s.selection
}

// Select sets the choice by wire value. Unknown values are ignored.
func (s *Selector) Select(value string) bool {
	city, ok := trip.Lookup(value)
	if !ok {
		return false
	}
	s.selection = trip.Select(city)
	return true
}

// Clear unsets the choice.
func (s *Selector) Clear() {
	s.selection = trip.Selection{}
}

// IsOpen reports whether the dropdown list is showing.
func (s *Selector) IsOpen() bool {
	return s.open
}

// Focus marks the field as focused.
func (s *Selector) Focus() {
	s.focused = true
}

// Blur removes focus and closes the list.
func (s *Selector) Blur() {
	s.focused = false
	s.close()
}

// SetWidth sets the rendered field width.
func (s *Selector) SetWidth(width int) {
	if width < 8 {
		width = 8
	}
	s.width = width
	s.filter.SetWidth(width - 2)
}

// Matches returns the cities currently listed.
func (s *Selector) Matches() []trip.City {
	return append([]trip.City(nil), s.matches...)
}

// Update handles keyboard input while the field is focused.
func (s *Selector) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !s.focused {
		return nil
	}
	if !s.open {
		return s.updateClosed(msg)
	}

	switch msg.String() {
	case "up":
		if s.selected > 0 {
			s.selected--
		}
		s.ensureVisible()
		return nil

	case "down":
		if s.selected < len(s.matches)-1 {
			s.selected++
		}
		s.ensureVisible()
		return nil

	case "pgup":
		s.selected -= defaultListHeight
		s.ensureVisible()
		return nil

	case "pgdown":
		s.selected += defaultListHeight
		s.ensureVisible()
		return nil

	case "enter":
		if s.selected >= 0 && s.selected < len(s.matches) {
			s.selection = trip.Select(s.matches[s.selected])
		}
		s.close()
		return nil

	case "esc":
		s.close()
		return nil
	}

	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.refilter()
	}
	return cmd
}

// UpdateFilter forwards non-key messages such as cursor blinks and pastes
// to the search input while the list is open.
func (s *Selector) UpdateFilter(msg tea.Msg) tea.Cmd {
	if !s.open {
		return nil
	}
	before := s.filter.Value()
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	if s.filter.Value() != before {
		s.refilter()
	}
	return cmd
}

func (s *Selector) updateClosed(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down", "space":
		return s.openList()
	case "delete", "backspace":
		s.Clear()
		return nil
	}

	if msg.Text == "" {
		return nil
	}

	// Typing on a closed field opens it with the text as the filter.
	cmd := s.openList()
	var inputCmd tea.Cmd
	s.filter, inputCmd = s.filter.Update(msg)
	s.refilter()
	return tea.Batch(cmd, inputCmd)
}

func (s *Selector) openList() tea.Cmd {
	s.open = true
	s.filter.Reset()
	s.refilter()

	if value := s.selection.Value(); value != "" {
		for i, city := range s.matches {
			if city.Value == value {
				s.selected = i
				break
			}
		}
	}
	s.ensureVisible()
	return s.filter.Focus()
}

func (s *Selector) close() {
	s.open = false
	s.filter.Blur()
	s.filter.Reset()
}

func (s *Selector) refilter() {
	s.matches = trip.Search(s.filter.Value())
	s.selected = 0
	s.scroll = 0
}

func (s *Selector) ensureVisible() {
	if len(s.matches) == 0 {
		s.selected = 0
		s.scroll = 0
		return
	}

	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.matches) {
		s.selected = len(s.matches) - 1
	}

	if s.selected < s.scroll {
		s.scroll = s.selected
	}
	if s.selected >= s.scroll+defaultListHeight {
		s.scroll = s.selected - defaultListHeight + 1
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// View renders the field and, when open, the list beneath it.
func (s *Selector) View() string {
	contentWidth := s.width - 2

	var field string
	switch {
	case s.open:
		field = styles.FilterStyle.Render("/ ") + s.filter.View()
	case s.selection.IsSet():
		field = styles.ValueStyle.Render(utils.TruncateToWidth(s.selection.Label(), contentWidth))
	default:
		field = styles.PlaceholderStyle.Render(Placeholder)
	}

	if !s.open {
		caret := "▾"
		if s.focused {
			caret = styles.TitleStyle.Render(caret)
		}
		return utils.PadStyled(field, contentWidth) + " " + caret
	}

	var list strings.Builder
	if len(s.matches) == 0 {
		list.WriteString(styles.TextMutedStyle.Render(utils.PadPlain("No matching cities", contentWidth)))
	}
	for i := 0; i < defaultListHeight && s.scroll+i < len(s.matches); i++ {
		index := s.scroll + i
		if i > 0 {
			list.WriteString("\n")
		}
		line := utils.PadPlain(" "+utils.TruncateToWidth(s.matches[index].Label, contentWidth-1), contentWidth)
		if index == s.selected {
			list.WriteString(styles.SelectedStyle.Render(line))
		} else {
			list.WriteString(styles.TextStyle.Render(line))
		}
	}

	return field + "\n" + styles.DropdownStyle.Render(list.String())
}
