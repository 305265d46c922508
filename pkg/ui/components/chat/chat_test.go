package chat

import (
	"errors"
	"strings"
	"testing"

	"tripplanner/pkg/agent"
	"tripplanner/pkg/ui/components/testutils"

	"github.com/charmbracelet/x/ansi"
)

func newTestChat(querier *testutils.FakeQuerier) *Chat {
	c := New(querier)
	c.SetSize(60, 20)
	return c
}

func TestSendMessage_WhitespaceOnly(t *testing.T) {
	querier := &testutils.FakeQuerier{}
	c := newTestChat(querier)

	for _, input := range []string{"", "   ", "\t \t"} {
		c.SetInput(input)
		if cmd := c.SendMessage(); cmd != nil {
			t.Fatalf("Expected no command for %q", input)
		}
	}

	if len(c.Messages()) != 0 {
		t.Fatalf("Expected empty transcript, got %v", c.Messages())
	}
	if len(querier.AskCalls()) != 0 {
		t.Fatalf("Expected no requests, got %v", querier.AskCalls())
	}
}

func TestSendMessage_RoundTrip(t *testing.T) {
	querier := &testutils.FakeQuerier{
		AskFunc: func(string) (string, error) { return "Sunny.", nil },
	}
	c := newTestChat(querier)
	c.SetInput("What's the weather?")

	cmd := c.SendMessage()
	if cmd == nil {
		t.Fatal("Expected request command")
	}

	// The user turn is visible before the reply arrives.
	messages := c.Messages()
	if len(messages) != 1 || messages[0].Role != agent.RoleUser || messages[0].Content != "What's the weather?" {
		t.Fatalf("Expected user turn, got %v", messages)
	}
	if c.Input() != "" {
		t.Errorf("Expected input cleared, got %q", c.Input())
	}

	reply, ok := cmd().(ReplyMsg)
	if !ok {
		t.Fatalf("Expected ReplyMsg, got %T", reply)
	}
	c.ApplyReply(reply)

	messages = c.Messages()
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[1].Role != agent.RoleAssistant || messages[1].Content != "Sunny." {
		t.Errorf("Expected assistant reply, got %+v", messages[1])
	}

	calls := querier.AskCalls()
	if len(calls) != 1 || calls[0] != "What's the weather?" {
		t.Errorf("Expected one ask call, got %v", calls)
	}
}

func TestSendMessage_UntrimmedText(t *testing.T) {
	querier := &testutils.FakeQuerier{}
	c := newTestChat(querier)
	c.SetInput("  hotels near the Louvre  ")

	c.SendMessage()()

	if got := c.Messages()[0].Content; got != "  hotels near the Louvre  " {
		t.Errorf("Expected untrimmed echo, got %q", got)
	}
	if got := querier.AskCalls()[0]; got != "  hotels near the Louvre  " {
		t.Errorf("Expected untrimmed query, got %q", got)
	}
}

func TestApplyReply_Failure(t *testing.T) {
	c := newTestChat(&testutils.FakeQuerier{})
	c.SetInput("Hi")
	c.SendMessage()

	c.ApplyReply(ReplyMsg{Err: errors.New("boom")})

	messages := c.Messages()
	last := messages[len(messages)-1]
	if last.Role != agent.RoleAssistant || last.Content != agent.ChatErrorText {
		t.Fatalf("Expected error turn, got %+v", last)
	}
}

func TestReset(t *testing.T) {
	c := newTestChat(&testutils.FakeQuerier{})
	c.SetInput("first")
	c.SendMessage()
	c.ApplyReply(ReplyMsg{Response: "ok"})
	c.SetInput("draft")

	c.Reset()

	if len(c.Messages()) != 0 {
		t.Fatalf("Expected empty transcript, got %v", c.Messages())
	}
	if c.Input() != "draft" {
		t.Errorf("Expected draft input kept, got %q", c.Input())
	}
}

func TestAutoScroll(t *testing.T) {
	c := New(&testutils.FakeQuerier{})
	c.SetSize(40, 8)

	for i := 0; i < 6; i++ {
		c.SetInput("question")
		c.SendMessage()
		c.ApplyReply(ReplyMsg{Response: "answer"})
	}

	if !c.AtBottom() {
		t.Fatal("Expected transcript scrolled to the newest message")
	}
	view := ansi.Strip(c.View())
	if !strings.Contains(view, "answer") {
		t.Errorf("Expected newest reply visible, got:\n%s", view)
	}
}

func TestUpdate_TypingAndEnter(t *testing.T) {
	querier := &testutils.FakeQuerier{}
	c := newTestChat(querier)
	c.Focus()

	for _, msg := range testutils.TextKeyPresses("Any museums?") {
		c.Update(msg)
	}
	if c.Input() != "Any museums?" {
		t.Fatalf("Expected typed input, got %q", c.Input())
	}

	cmd := c.Update(testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected enter to send")
	}
	if len(c.Messages()) != 1 {
		t.Fatalf("Expected user turn appended, got %v", c.Messages())
	}
}

func TestUpdate_IgnoredWhenBlurred(t *testing.T) {
	c := newTestChat(&testutils.FakeQuerier{})
	c.Update(testutils.NewTextKeyPressMsg("x"))
	if c.Input() != "" {
		t.Fatalf("Expected blurred chat to ignore keys, got %q", c.Input())
	}
}

func TestView(t *testing.T) {
	c := newTestChat(&testutils.FakeQuerier{})
	c.SetInput("What's the weather?")
	c.SendMessage()
	c.ApplyReply(ReplyMsg{Response: "**Sunny.**"})

	view := ansi.Strip(c.View())
	for _, want := range []string{Title, "You:", "What's the weather?", "Agent:", "Sunny."} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "**") {
		t.Errorf("Expected assistant markdown rendered, got:\n%s", view)
	}
}

func TestRenderTranscript_UserTextIsPlain(t *testing.T) {
	out := ansi.Strip(RenderTranscript([]agent.ChatMessage{
		{Role: agent.RoleUser, Content: "**not bold**"},
	}, 40))
	if !strings.Contains(out, "**not bold**") {
		t.Fatalf("Expected user text verbatim, got %q", out)
	}
}
