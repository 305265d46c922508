// Package planform is the trip query form: two city selectors, two dates
// and the Plan button.
package planform

import (
	"context"
	"log/slog"
	"strings"

	"tripplanner/pkg/agent"
	"tripplanner/pkg/trip"
	"tripplanner/pkg/ui/components/cityselect"
	"tripplanner/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Field identifies a focus stop inside the form.
type Field int

const (
	FieldDeparture Field = iota
	FieldArrival
	FieldCheckIn
	FieldCheckOut
	FieldPlanButton
)

// FieldCount is the number of focus stops in the form.
const FieldCount = int(FieldPlanButton) + 1

const (
	datePlaceholder = "YYYY-MM-DD"
	buttonLabel     = "Plan"
)

// PlanResponseMsg carries the outcome of one plan request.
type PlanResponseMsg struct {
	Response string
	Err      error
}

// Form holds the query fields and the latest plan text.
type Form struct {
	querier   agent.Querier
	departure *cityselect.Selector
	arrival   *cityselect.Selector
	checkIn   textinput.Model
	checkOut  textinput.Model

	focus   Field
	focused bool

	loading  bool
	planText string
	width    int
}

// New creates an empty form that sends plans through querier.
func New(querier agent.Querier) *Form {
	return &Form{
		querier:   querier,
		departure: cityselect.New(),
		arrival:   cityselect.New(),
		checkIn:   newDateInput(),
		checkOut:  newDateInput(),
	}
}

func newDateInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = datePlaceholder
	input.CharLimit = 10
	input.SetWidth(len(datePlaceholder) + 1)
	return input
}

// Departure returns the departure selector.
func (f *Form) Departure() *cityselect.Selector { return f.departure }

// Arrival returns the arrival selector.
func (f *Form) Arrival() *cityselect.Selector { return f.arrival }

// SetDates fills both date inputs.
func (f *Form) SetDates(checkIn, checkOut string) {
	f.checkIn.SetValue(checkIn)
	f.checkOut.SetValue(checkOut)
}

// Loading reports whether a plan request is outstanding.
func (f *Form) Loading() bool {
	return f.loading
}

// PlanText returns the latest plan text, or "" before the first response.
func (f *Form) PlanText() string {
	return f.planText
}

// SetWidth sets the width available to the form.
func (f *Form) SetWidth(width int) {
	f.width = width
	fieldWidth := width - labelWidth()
	if fieldWidth > 28 {
		fieldWidth = 28
	}
	f.departure.SetWidth(fieldWidth)
	f.arrival.SetWidth(fieldWidth)
}

func labelWidth() int {
	return styles.LabelStyle.GetWidth()
}

// Focused returns the focused field and whether the form holds focus.
func (f *Form) Focused() (Field, bool) {
	return f.focus, f.focused
}

// FocusField moves focus to field.
func (f *Form) FocusField(field Field) tea.Cmd {
	f.blurFields()
	f.focus = field
	f.focused = true

	switch field {
	case FieldDeparture:
		f.departure.Focus()
	case FieldArrival:
		f.arrival.Focus()
	case FieldCheckIn:
		return f.checkIn.Focus()
	case FieldCheckOut:
		return f.checkOut.Focus()
	}
	return nil
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	f.blurFields()
	f.focused = false
}

func (f *Form) blurFields() {
	f.departure.Blur()
	f.arrival.Blur()
	f.checkIn.Blur()
	f.checkOut.Blur()
}

// OnPlanButton reports whether the Plan button holds focus.
func (f *Form) OnPlanButton() bool {
	return f.focused && f.focus == FieldPlanButton
}

// CapturesKeys reports whether a city dropdown is open and owns the
// navigation keys.
func (f *Form) CapturesKeys() bool {
	return f.departure.IsOpen() || f.arrival.IsOpen()
}

// Update routes a key to the focused field.
func (f *Form) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !f.focused {
		return nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case FieldDeparture:
		cmd = f.departure.Update(msg)
	case FieldArrival:
		cmd = f.arrival.Update(msg)
	case FieldCheckIn:
		f.checkIn, cmd = f.checkIn.Update(msg)
	case FieldCheckOut:
		f.checkOut, cmd = f.checkOut.Update(msg)
	}
	return cmd
}

// UpdateInputs forwards non-key messages such as cursor blinks and pastes
// to the date inputs and to an open city search.
func (f *Form) UpdateInputs(msg tea.Msg) tea.Cmd {
	var inCmd, outCmd tea.Cmd
	f.checkIn, inCmd = f.checkIn.Update(msg)
	f.checkOut, outCmd = f.checkOut.Update(msg)
	return tea.Batch(
		f.departure.UpdateFilter(msg),
		f.arrival.UpdateFilter(msg),
		inCmd,
		outCmd,
	)
}

// Query snapshots the current field values.
func (f *Form) Query() trip.Query {
	return trip.Query{
		Departure: f.departure.Selection(),
		Arrival:   f.arrival.Selection(),
		CheckIn:   f.checkIn.Value(),
		CheckOut:  f.checkOut.Value(),
	}
}

// SubmitPlan marks the form loading and returns the request command. The
// fields are read now, so later edits do not change the request.
func (f *Form) SubmitPlan() tea.Cmd {
	query := f.Query()
	f.loading = true

	slog.Info("plan_request_start",
		"departure", query.Departure.Value(),
		"arrival", query.Arrival.Value(),
		"check_in", query.CheckIn,
		"check_out", query.CheckOut,
	)

	querier := f.querier
	return func() tea.Msg {
		response, err := querier.Plan(context.Background(), query)
		return PlanResponseMsg{Response: response, Err: err}
	}
}

// ApplyResponse records a plan outcome and reports whether it succeeded.
// The plan text always reflects the most recent completion.
func (f *Form) ApplyResponse(msg PlanResponseMsg) bool {
	f.loading = false

	if msg.Err != nil {
		slog.Error("plan_request_error", "error", msg.Err)
		f.planText = agent.PlanErrorText
		return false
	}

	slog.Info("plan_request_done", "response_len", len(msg.Response))
	f.planText = msg.Response
	return true
}

// View renders the form fields and button.
func (f *Form) View() string {
	var b strings.Builder

	rows := []struct {
		field Field
		label string
		value string
	}{
		{FieldDeparture, "From", f.departure.View()},
		{FieldArrival, "To", f.arrival.View()},
		{FieldCheckIn, "Check-in", f.checkIn.View()},
		{FieldCheckOut, "Check-out", f.checkOut.View()},
	}

	for _, row := range rows {
		labelStyle := styles.LabelStyle
		if f.focused && f.focus == row.field {
			labelStyle = styles.LabelFocusedStyle
		}
		b.WriteString(labelStyle.Render(row.label + ":"))
		b.WriteString(indentContinuation(row.value, labelWidth()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	button := styles.ButtonStyle
	if f.OnPlanButton() {
		button = styles.ButtonFocusedStyle
	}
	b.WriteString(strings.Repeat(" ", labelWidth()))
	b.WriteString(button.Render(buttonLabel))

	return b.String()
}

// indentContinuation aligns the lines after the first under the value
// column, so an open dropdown sits below its field.
func indentContinuation(value string, indent int) string {
	lines := strings.Split(value, "\n")
	pad := strings.Repeat(" ", indent)
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
