// Package chat is the follow-up conversation panel shown under a plan.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"tripplanner/pkg/agent"
	"tripplanner/pkg/ui/components/utils"
	"tripplanner/pkg/ui/markdown"
	"tripplanner/pkg/ui/styles"

	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	Title       = "Chat with the Agent"
	Placeholder = "Type your message here..."

	boxBorderSize = 1
	boxPaddingH   = 1
	// title, separator and input line
	chromeLines = 3
)

// ReplyMsg carries the outcome of one chat request.
type ReplyMsg struct {
	Response string
	Err      error
}

// Chat holds the transcript, the input buffer and the transcript viewport.
type Chat struct {
	querier    agent.Querier
	transcript *agent.Transcript
	input      textinput.Model
	viewport   viewport.Model
	focused    bool
	width      int
	height     int
}

// New creates an empty chat that sends messages through querier.
func New(querier agent.Querier) *Chat {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = Placeholder

	c := &Chat{
		querier:    querier,
		transcript: agent.NewTranscript(),
		input:      input,
		viewport:   viewport.New(viewport.WithWidth(40), viewport.WithHeight(5)),
	}
	c.transcript.OnChange(func(int) {
		c.refresh()
		c.viewport.GotoBottom()
	})
	c.refresh()
	return c
}

// Messages returns the transcript in insertion order.
func (c *Chat) Messages() []agent.ChatMessage {
	return c.transcript.Messages()
}

// Input returns the current buffer.
func (c *Chat) Input() string {
	return c.input.Value()
}

// SetInput replaces the buffer.
func (c *Chat) SetInput(text string) {
	c.input.SetValue(text)
}

// Focus moves keyboard focus to the input.
func (c *Chat) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

// Blur removes keyboard focus.
func (c *Chat) Blur() {
	c.focused = false
	c.input.Blur()
}

// Focused reports whether the input holds focus.
func (c *Chat) Focused() bool {
	return c.focused
}

// AtBottom reports whether the transcript is scrolled to its end.
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

// SetSize sets the outer box dimensions.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	contentWidth := c.contentWidth()
	c.viewport.SetWidth(contentWidth)
	c.viewport.SetHeight(c.viewportHeight())
	c.input.SetWidth(contentWidth - 3)
	c.refresh()
	c.viewport.GotoBottom()
}

// Update handles a key while the input is focused.
func (c *Chat) Update(msg tea.KeyPressMsg) tea.Cmd {
	if !c.focused {
		return nil
	}

	switch msg.String() {
	case "enter":
		return c.SendMessage()
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// UpdateInput forwards non-key messages such as cursor blinks.
func (c *Chat) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// SendMessage appends the buffer as a user turn and returns the request
// command. Whitespace-only input sends nothing and returns nil. The text is
// sent exactly as typed.
func (c *Chat) SendMessage() tea.Cmd {
	text := c.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.transcript.AppendUser(text)
	c.input.Reset()

	slog.Info("chat_request_start", "query_len", len(text), "turns", c.transcript.Len())

	querier := c.querier
	return func() tea.Msg {
		response, err := querier.Ask(context.Background(), text)
		return ReplyMsg{Response: response, Err: err}
	}
}

// ApplyReply appends the assistant turn for a finished request.
func (c *Chat) ApplyReply(msg ReplyMsg) {
	if msg.Err != nil {
		slog.Error("chat_reply_error", "error", msg.Err)
		c.transcript.AppendAssistant(agent.ChatErrorText)
		return
	}

	slog.Info("chat_reply_done", "response_len", len(msg.Response))
	c.transcript.AppendAssistant(msg.Response)
}

// Reset clears the transcript. The input buffer is kept.
func (c *Chat) Reset() {
	c.transcript.Reset()
}

func (c *Chat) refresh() {
	c.viewport.SetContent(RenderTranscript(c.transcript.Messages(), c.contentWidth()))
}

// RenderTranscript formats messages for a column of the given width.
func RenderTranscript(messages []agent.ChatMessage, width int) string {
	if len(messages) == 0 {
		return styles.TextMutedStyle.Render("Ask a follow-up question about your trip.")
	}

	var lines []string
	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, "")
		}
		switch msg.Role {
		case agent.RoleUser:
			lines = append(lines, styles.UserLabelStyle.Render("You:"))
			lines = append(lines, strings.Split(ansi.Wrap(msg.Content, width, ""), "\n")...)
		default:
			lines = append(lines, styles.AgentLabelStyle.Render("Agent:"))
			lines = append(lines, markdown.Render(msg.Content, width)...)
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the chat box.
func (c *Chat) View() string {
	contentWidth := c.contentWidth()

	lines := []string{styles.TitleStyle.Render(utils.TruncateToWidth(Title, contentWidth))}
	lines = append(lines, utils.ClampLines(strings.Split(c.viewport.View(), "\n"), c.viewportHeight())...)
	lines = append(lines, styles.RuleStyle.Render(strings.Repeat("─", contentWidth)))
	lines = append(lines, c.input.View())

	box := styles.BoxStyle
	if c.focused {
		box = styles.BoxFocusedStyle
	}
	width := c.width
	if width < 1 {
		width = 1
	}
	return box.Width(width).Render(strings.Join(lines, "\n"))
}

func (c *Chat) contentWidth() int {
	width := c.width - 2*(boxBorderSize+boxPaddingH)
	if width < 1 {
		return 1
	}
	return width
}

func (c *Chat) viewportHeight() int {
	height := c.height - 2*boxBorderSize - chromeLines
	if height < 1 {
		return 1
	}
	return height
}
