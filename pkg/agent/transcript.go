package agent

// Transcript is the append-only, insertion-ordered list of chat turns.
// Listeners registered with OnChange run whenever its length changes.
type Transcript struct {
	messages  []ChatMessage
	listeners []func(length int)
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// OnChange registers fn to run after every length change.
func (t *Transcript) OnChange(fn func(length int)) {
	if fn == nil {
		return
	}
	t.listeners = append(t.listeners, fn)
}

// Append adds a message at the end.
func (t *Transcript) Append(msg ChatMessage) {
	t.messages = append(t.messages, msg)
	t.notify()
}

// AppendUser adds a user turn.
func (t *Transcript) AppendUser(content string) {
	t.Append(ChatMessage{Role: RoleUser, Content: content})
}

// AppendAssistant adds an assistant turn.
func (t *Transcript) AppendAssistant(content string) {
	t.Append(ChatMessage{Role: RoleAssistant, Content: content})
}

// Reset replaces the transcript with an empty one.
func (t *Transcript) Reset() {
	if len(t.messages) == 0 {
		return
	}
	t.messages = nil
	t.notify()
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the messages in insertion order.
func (t *Transcript) Messages() []ChatMessage {
	return append([]ChatMessage(nil), t.messages...)
}

func (t *Transcript) notify() {
	n := len(t.messages)
	for _, fn := range t.listeners {
		fn(n)
	}
}
