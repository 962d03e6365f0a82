package a2a

import "strings"

// MessageRole identifies the sender of a message.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleAgent MessageRole = "agent"
)

/*
Message represents all non-artifact communication between client and agent.
*/
type Message struct {
	Role     MessageRole    `json:"role"`
	Parts    []Part         `json:"parts"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewTextMessage(role MessageRole, text string) Message {
	return Message{
		Role:  role,
		Parts: []Part{NewTextPart(text)},
	}
}

// Text concatenates the text parts of the message in order. Non-text parts
// are skipped.
func (msg *Message) Text() string {
	var sb strings.Builder

	for _, part := range msg.Parts {
		if part.Type == PartTypeText {
			sb.WriteString(part.Text)
		}
	}

	return sb.String()
}
