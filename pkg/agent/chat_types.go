package agent

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fixed user-visible failure texts.
const (
	PlanErrorText = "An error occurred while fetching the data."
	ChatErrorText = "An error occurred while fetching the response."
)

// ChatMessage represents a single turn in the transcript.
type ChatMessage struct {
	Role    Role
	Content string
}
