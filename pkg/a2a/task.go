package a2a

import "time"

/*
Task is one unit of A2A conversation with an agent. It is owned by the
task store; handlers mutate it only through the task manager, which
serializes writers per task id.
*/
type Task struct {
	ID        string         `json:"id"`
	AgentName string         `json:"agent_name"`
	SessionID string         `json:"session_id,omitempty"`
	State     TaskState      `json:"state"`
	Messages  []Message      `json:"messages,omitempty"`
	Artifacts []Artifact     `json:"artifacts,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToState moves the task to the given state and stamps the update time.
func (task *Task) ToState(state TaskState) {
	task.State = state
	task.UpdatedAt = time.Now().UTC()
}

// AddMessage appends a message and stamps the update time.
func (task *Task) AddMessage(msg Message) {
	task.Messages = append(task.Messages, msg)
	task.UpdatedAt = time.Now().UTC()
}

// RecordError stores the error text in the task metadata. The error is
// surfaced through the task body, never as a transport failure.
func (task *Task) RecordError(err error) {
	if task.Metadata == nil {
		task.Metadata = make(map[string]any)
	}
	task.Metadata["error"] = err.Error()
}

func (task *Task) LastMessage() *Message {
	if len(task.Messages) == 0 {
		return nil
	}

	return &task.Messages[len(task.Messages)-1]
}

/*
Snapshot returns a detached copy of the task, safe to serialize or inspect
while the stored original keeps changing under the task manager's lock.
Messages are append-only and parts are never mutated in place, so copying
the slices and the metadata map is sufficient.
*/
func (task *Task) Snapshot() *Task {
	out := *task

	out.Messages = make([]Message, len(task.Messages))
	copy(out.Messages, task.Messages)

	out.Artifacts = make([]Artifact, len(task.Artifacts))
	copy(out.Artifacts, task.Artifacts)

	if task.Metadata != nil {
		out.Metadata = make(map[string]any, len(task.Metadata))
		for key, value := range task.Metadata {
			out.Metadata[key] = value
		}
	}

	return &out
}
