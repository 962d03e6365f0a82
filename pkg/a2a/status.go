package a2a

/*
TaskState enumerates the mutually exclusive states a task may be in. The
zero value is "submitted"; a task leaves "working" before any handler
returns it to a caller.
*/
type TaskState string

const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateInputReq  TaskState = "input-required"
	TaskStateCompleted TaskState = "completed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateFailed    TaskState = "failed"
)

// Terminal reports whether no further work will happen on a task in this
// state. Completed counts as terminal for the state machine even though
// follow-up messages may reopen the conversation.
func (state TaskState) Terminal() bool {
	switch state {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed:
		return true
	}
	return false
}

// AcceptsMessages reports whether a follow-up message may be appended.
// Canceled and failed tasks reject messages; completed tasks accept them,
// which continues the conversation.
func (state TaskState) AcceptsMessages() bool {
	return state != TaskStateCanceled && state != TaskStateFailed
}
