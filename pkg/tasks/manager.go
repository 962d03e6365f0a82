package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/utils"
)

/*
Manager owns the task state machine. Every mutation on one task id is
serialized through a per-id mutex; tasks for different ids proceed fully
concurrently. An exchange with the engine is synchronous: by the time any
method returns, the task is in a terminal state, never left working.

Methods return detached snapshots taken while the lock is held. The live
task never leaves the manager, so callers can serialize the result while
a concurrent exchange mutates the original.
*/
type Manager struct {
	store    Store
	registry *registry.Registry
	sessions *runtime.SessionStore

	locks utils.KeyMutex
}

func NewManager(
	store Store, reg *registry.Registry, sessions *runtime.SessionStore,
) *Manager {
	return &Manager{
		store:    store,
		registry: reg,
		sessions: sessions,
	}
}

/*
CreateTask starts a new task conversation with a deployed agent. The
initial user message is appended, one exchange is driven against the
engine, and the task resolves to completed, or to failed with the error
recorded in its metadata. Engine failures never surface as transport
errors.
*/
func (manager *Manager) CreateTask(
	ctx context.Context, agentName string, req a2a.TaskCreateRequest,
) (*a2a.Task, error) {
	instance, ok := manager.registry.GetInstance(ctx, agentName)

	if !ok {
		return nil, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found or not deployed", agentName,
		)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := time.Now().UTC()
	task := &a2a.Task{
		ID:        uuid.NewString(),
		AgentName: agentName,
		SessionID: sessionID,
		State:     a2a.TaskStateWorking,
		Messages:  []a2a.Message{req.Message},
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	manager.runExchange(ctx, task, instance, req.Message)
	manager.store.Put(task)

	return task.Snapshot(), nil
}

// GetTask returns a snapshot of a task by id.
func (manager *Manager) GetTask(
	ctx context.Context, id string,
) (*a2a.Task, error) {
	unlock := manager.locks.Lock(id)
	defer unlock()

	task, ok := manager.store.Get(id)

	if !ok {
		return nil, errors.ErrTaskNotFound.WithMessagef("task '%s' not found", id)
	}

	return task.Snapshot(), nil
}

/*
SendMessage appends a follow-up user message to an existing task and
drives one exchange on the task's session. Canceled and failed tasks
reject the message; completed tasks accept it, continuing the
conversation.
*/
func (manager *Manager) SendMessage(
	ctx context.Context, id string, msg a2a.Message,
) (*a2a.Task, error) {
	unlock := manager.locks.Lock(id)
	defer unlock()

	task, ok := manager.store.Get(id)

	if !ok {
		return nil, errors.ErrTaskNotFound.WithMessagef("task '%s' not found", id)
	}

	if !task.State.AcceptsMessages() {
		return nil, errors.ErrInvalidTaskState.WithMessagef(
			"cannot send message to task in state '%s'", task.State,
		)
	}

	instance, ok := manager.registry.GetInstance(ctx, task.AgentName)

	if !ok {
		return nil, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found or not deployed", task.AgentName,
		)
	}

	task.AddMessage(msg)
	task.ToState(a2a.TaskStateWorking)

	manager.runExchange(ctx, task, instance, msg)

	return task.Snapshot(), nil
}

/*
CancelTask moves a task to canceled regardless of its prior state, so the
operation is idempotent. An exchange already in flight is not interrupted;
cancellation only flips the state.
*/
func (manager *Manager) CancelTask(
	ctx context.Context, id string,
) (*a2a.Task, error) {
	unlock := manager.locks.Lock(id)
	defer unlock()

	task, ok := manager.store.Get(id)

	if !ok {
		return nil, errors.ErrTaskNotFound.WithMessagef("task '%s' not found", id)
	}

	task.ToState(a2a.TaskStateCanceled)
	log.Info("task canceled", "task", id)

	return task.Snapshot(), nil
}

// runExchange drives a single turn with the engine and folds the outcome
// into the task. Non-text parts of the outgoing message are dropped; the
// engine consumes one concatenated text payload.
func (manager *Manager) runExchange(
	ctx context.Context, task *a2a.Task, instance *registry.AgentInstance, msg a2a.Message,
) {
	session := manager.sessions.GetOrCreate(task.SessionID)

	events, err := instance.Run(ctx, session, msg.Text())

	if err != nil {
		log.Error("task exchange failed", "task", task.ID, "agent", task.AgentName, "error", err)
		task.RecordError(err)
		task.ToState(a2a.TaskStateFailed)
		return
	}

	task.AddMessage(a2a.NewTextMessage(a2a.RoleAgent, runtime.CollectText(events)))
	task.ToState(a2a.TaskStateCompleted)

	log.Debug("task exchange completed",
		"task", task.ID,
		"agent", task.AgentName,
		"reply_chars", len(task.LastMessage().Text()),
	)
}
