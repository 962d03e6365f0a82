package a2a

// TaskCreateRequest starts a new task conversation with an agent.
type TaskCreateRequest struct {
	Message   Message        `json:"message"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// TaskSendMessageRequest continues an existing task conversation.
type TaskSendMessageRequest struct {
	Message Message `json:"message"`
}
