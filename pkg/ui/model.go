// Package ui wires the trip planner components into one Bubble Tea program.
package ui

import (
	"strings"

	"tripplanner/pkg/agent"
	"tripplanner/pkg/ui/components/chat"
	"tripplanner/pkg/ui/components/header"
	"tripplanner/pkg/ui/components/planform"
	"tripplanner/pkg/ui/components/planpanel"
	"tripplanner/pkg/ui/components/statusbar"
	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/styles"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const (
	defaultWidth  = 100
	defaultHeight = 30

	loadingText  = "Planning your trip..."
	dropdownHint = "Up/Down Move | Enter Select | Esc Close"
)

// focusTarget is one stop in the tab ring.
type focusTarget int

const (
	focusDeparture focusTarget = iota
	focusArrival
	focusCheckIn
	focusCheckOut
	focusPlanButton
	focusPlanPanel
	focusChat
)

var focusHints = map[focusTarget]string{
	focusDeparture:  "Enter Open list | Type to search | Del Clear | Tab Next",
	focusArrival:    "Enter Open list | Type to search | Del Clear | Tab Next",
	focusCheckIn:    "Type YYYY-MM-DD | Tab Next | Ctrl+P Plan",
	focusCheckOut:   "Type YYYY-MM-DD | Tab Next | Ctrl+P Plan",
	focusPlanButton: "Enter Plan | Tab Next | Ctrl+C Quit",
	focusPlanPanel:  "Up/Down Scroll | y Copy | Tab Next",
	focusChat:       "Enter Send | Up/Down Scroll | Tab Next",
}

// Model is the root Bubble Tea model.
type Model struct {
	form      *planform.Form
	planPanel *planpanel.Panel
	chat      *chat.Chat
	statusBar *statusbar.StatusBarView
	spinner   spinner.Model

	focus   focusTarget
	message string

	width  int
	height int
}

// NewModel creates the root model. endpoint is only displayed.
func NewModel(querier agent.Querier, endpoint string) Model {
	statusBar := statusbar.NewStatusBarView()
	statusBar.SetEndpoint(endpoint)

	m := Model{
		form:      planform.New(querier),
		planPanel: planpanel.New(),
		chat:      chat.New(querier),
		statusBar: statusBar,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.setFocus(focusDeparture)
	m.layout()
	return m
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case planform.PlanResponseMsg:
		if m.form.ApplyResponse(msg) {
			m.chat.Reset()
		}
		m.planPanel.SetText(m.form.PlanText())
		if !m.planPanel.IsVisible() && m.focus > focusPlanButton {
			m.setFocus(focusPlanButton)
		}
		m.layout()
		return m, nil

	case chat.ReplyMsg:
		m.chat.ApplyReply(msg)
		return m, nil

	case planpanel.CopiedMsg:
		m.message = "Plan copied to clipboard"
		return m, nil

	case spinner.TickMsg:
		// Dropping the tick once idle stops the animation loop.
		if !m.form.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, tea.Batch(m.form.UpdateInputs(msg), m.chat.UpdateInput(msg))
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+p":
		return m, m.startPlan()
	case "tab":
		return m, m.moveFocus(1)
	case "shift+tab":
		return m, m.moveFocus(-1)
	case "enter":
		if m.focus == focusPlanButton {
			return m, m.startPlan()
		}
	}

	switch m.focus {
	case focusPlanPanel:
		return m, m.planPanel.Update(msg)
	case focusChat:
		return m, m.chat.Update(msg)
	default:
		return m, m.form.Update(msg)
	}
}

func (m *Model) startPlan() tea.Cmd {
	wasLoading := m.form.Loading()
	cmd := m.form.SubmitPlan()
	if wasLoading {
		// The spinner is already ticking.
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// focusStops lists the reachable stops. The plan panel and chat only join
// the ring once there is plan text to show.
func (m Model) focusStops() []focusTarget {
	stops := []focusTarget{focusDeparture, focusArrival, focusCheckIn, focusCheckOut, focusPlanButton}
	if m.planPanel.IsVisible() {
		stops = append(stops, focusPlanPanel, focusChat)
	}
	return stops
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	stops := m.focusStops()
	current := 0
	for i, stop := range stops {
		if stop == m.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(stops)) % len(stops)
	return m.setFocus(stops[next])
}

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.form.Blur()
	m.planPanel.Blur()
	m.chat.Blur()
	m.focus = target
	m.statusBar.SetHint(focusHints[target])

	switch target {
	case focusPlanPanel:
		m.planPanel.Focus()
		return nil
	case focusChat:
		return m.chat.Focus()
	default:
		return m.form.FocusField(planform.Field(target))
	}
}

func (m *Model) layout() {
	leftWidth, rightWidth := m.columnWidths()
	bodyHeight := m.bodyHeight()

	m.form.SetWidth(leftWidth - 4)

	panelHeight := bodyHeight * 3 / 5
	m.planPanel.SetSize(rightWidth, panelHeight)
	m.chat.SetSize(rightWidth, bodyHeight-panelHeight)
	m.statusBar.SetWidth(m.width)
}

func (m Model) columnWidths() (int, int) {
	left := m.width * 2 / 5
	if left > 50 {
		left = 50
	}
	if left < 36 {
		left = 36
	}
	if left > m.width {
		left = m.width
	}
	right := m.width - left
	if right < 1 {
		right = 1
	}
	return left, right
}

func (m Model) bodyHeight() int {
	height := m.height - header.Height - 1
	if height < 1 {
		return 1
	}
	return height
}

// View renders the application (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	m.statusBar.SetBusy(m.form.Loading())
	switch {
	case m.form.Loading():
		m.statusBar.SetMessage(loadingText)
	case m.message == "" && m.form.CapturesKeys():
		m.statusBar.SetMessage(dropdownHint)
	default:
		m.statusBar.SetMessage(m.message)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLeft(), m.renderRight())
	bodyLines := utils.ClampLines(strings.Split(body, "\n"), m.bodyHeight())

	content := header.View(m.width) + "\n" + strings.Join(bodyLines, "\n") + "\n" + m.statusBar.Render()

	v := tea.NewView(content)
	v.AltScreen = true
	v.WindowTitle = header.Title
	return v
}

func (m Model) renderLeft() string {
	leftWidth, _ := m.columnWidths()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Plan a trip"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")
	if m.form.Loading() {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.TextMutedStyle.Render(loadingText))
	}

	box := styles.BoxStyle
	if m.focus <= focusPlanButton {
		box = styles.BoxFocusedStyle
	}
	return box.Width(leftWidth).Render(b.String())
}

func (m Model) renderRight() string {
	_, rightWidth := m.columnWidths()

	if !m.planPanel.IsVisible() {
		hint := styles.TextMutedStyle.Render("Pick your cities and dates, then press Plan.")
		return styles.BoxStyle.Width(rightWidth).Render(hint)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.planPanel.View(), m.chat.View())
}
