package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/utils"
)

/*
Registry is the single source of truth for agent existence, definition,
deployment status and runnable-instance caching. Whether the backing store
is durable or transient is decided once at construction and hidden behind
the AgentStore interface.

All mutations on one agent name are serialized through a per-name mutex,
so a deploy and a delete on the same name can never interleave. Operations
on different names proceed concurrently.
*/
type Registry struct {
	store   AgentStore
	factory *Factory
	baseURL string

	locks     utils.KeyMutex
	instances sync.Map // name -> *AgentInstance
}

func NewRegistry(store AgentStore, factory *Factory, baseURL string) *Registry {
	return &Registry{
		store:   store,
		factory: factory,
		baseURL: baseURL,
	}
}

/*
Register stores an agent definition. Registration is an upsert: an existing
name is overwritten and keeps its creation time. The agent starts in draft
unless deployImmediately chains straight into deployment.
*/
func (registry *Registry) Register(
	ctx context.Context, def AgentDefinition, deployImmediately bool,
) (AgentRecord, error) {
	unlock := registry.locks.Lock(def.Name)
	defer unlock()

	item, err := registry.store.Save(ctx, def, uuid.NewString(), StatusDraft)

	if err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to save agent '%s': %v", def.Name, err,
		)
	}

	log.Info("agent registered", "name", def.Name, "deploy", deployImmediately)

	if deployImmediately {
		return registry.deployLocked(ctx, def.Name)
	}

	return registry.buildRecord(item), nil
}

// Deploy materializes the named agent and marks it active.
func (registry *Registry) Deploy(
	ctx context.Context, name string,
) (AgentRecord, error) {
	unlock := registry.locks.Lock(name)
	defer unlock()

	return registry.deployLocked(ctx, name)
}

// deployLocked runs the deployment state machine. Callers hold the
// per-name lock.
func (registry *Registry) deployLocked(
	ctx context.Context, name string,
) (AgentRecord, error) {
	item, ok, err := registry.store.Get(ctx, name)

	if err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to load agent '%s': %v", name, err,
		)
	}

	if !ok {
		return AgentRecord{}, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found", name,
		)
	}

	if err := registry.store.UpdateStatus(ctx, name, StatusDeploying, ""); err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to update agent '%s': %v", name, err,
		)
	}

	// Sub-agents resolve against the live instance cache only: an agent
	// must already be deployed to be wired in, and names that are not are
	// skipped rather than failing the deployment.
	subAgents := make([]*AgentInstance, 0, len(item.Definition.SubAgents))

	for _, subName := range item.Definition.SubAgents {
		cached, ok := registry.instances.Load(subName)

		if !ok {
			log.Warn("sub-agent not deployed, skipping", "agent", name, "sub_agent", subName)
			continue
		}

		subAgents = append(subAgents, cached.(*AgentInstance))
	}

	instance, err := registry.factory.CreateInstance(item.Definition, subAgents)

	if err != nil {
		log.Error("agent deployment failed", "name", name, "error", err)

		if updateErr := registry.store.UpdateStatus(ctx, name, StatusFailed, err.Error()); updateErr != nil {
			log.Error("failed to record deployment failure", "name", name, "error", updateErr)
		}

		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to deploy agent '%s': %v", name, err,
		)
	}

	registry.instances.Store(name, instance)

	if err := registry.store.UpdateStatus(ctx, name, StatusActive, ""); err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to update agent '%s': %v", name, err,
		)
	}

	log.Info("agent deployed", "name", name)

	item, _, err = registry.store.Get(ctx, name)

	if err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to load agent '%s': %v", name, err,
		)
	}

	return registry.buildRecord(item), nil
}

/*
GetInstance returns the cached runnable instance for an agent. When the
cache is cold but the store holds an active definition, the instance is
rebuilt on the spot, which restores deployed agents after a process
restart. Reconstruction failures are logged and yield absent rather than
an error.
*/
func (registry *Registry) GetInstance(
	ctx context.Context, name string,
) (*AgentInstance, bool) {
	if cached, ok := registry.instances.Load(name); ok {
		return cached.(*AgentInstance), true
	}

	unlock := registry.locks.Lock(name)
	defer unlock()

	if cached, ok := registry.instances.Load(name); ok {
		return cached.(*AgentInstance), true
	}

	item, ok, err := registry.store.Get(ctx, name)

	if err != nil || !ok || item.Status != StatusActive {
		return nil, false
	}

	instance, err := registry.factory.CreateInstance(item.Definition, nil)

	if err != nil {
		log.Error("failed to restore agent from store", "name", name, "error", err)
		return nil, false
	}

	log.Info("agent restored from store", "name", name)
	registry.instances.Store(name, instance)

	return instance, true
}

// Get returns the record for a registered agent.
func (registry *Registry) Get(
	ctx context.Context, name string,
) (AgentRecord, error) {
	item, ok, err := registry.store.Get(ctx, name)

	if err != nil {
		return AgentRecord{}, errors.ErrInternal.WithMessagef(
			"failed to load agent '%s': %v", name, err,
		)
	}

	if !ok {
		return AgentRecord{}, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found", name,
		)
	}

	return registry.buildRecord(item), nil
}

// Definition returns the stored definition for an agent.
func (registry *Registry) Definition(
	ctx context.Context, name string,
) (AgentDefinition, error) {
	item, ok, err := registry.store.Get(ctx, name)

	if err != nil {
		return AgentDefinition{}, errors.ErrInternal.WithMessagef(
			"failed to load agent '%s': %v", name, err,
		)
	}

	if !ok {
		return AgentDefinition{}, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found", name,
		)
	}

	return item.Definition, nil
}

// List returns one page of agent records and the total count. Pages are
// 1-indexed; out-of-range pages yield an empty page, not an error.
func (registry *Registry) List(
	ctx context.Context, page, pageSize int,
) ([]AgentRecord, int, error) {
	items, total, err := registry.store.List(ctx, page, pageSize)

	if err != nil {
		return nil, 0, errors.ErrInternal.WithMessagef(
			"failed to list agents: %v", err,
		)
	}

	records := make([]AgentRecord, 0, len(items))

	for _, item := range items {
		records = append(records, registry.buildRecord(item))
	}

	return records, total, nil
}

// Delete removes an agent's definition, metadata and cached instance.
func (registry *Registry) Delete(ctx context.Context, name string) error {
	unlock := registry.locks.Lock(name)
	defer unlock()

	ok, err := registry.store.Delete(ctx, name)

	if err != nil {
		return errors.ErrInternal.WithMessagef(
			"failed to delete agent '%s': %v", name, err,
		)
	}

	if !ok {
		return errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found", name,
		)
	}

	registry.instances.Delete(name)
	log.Info("agent deleted", "name", name)

	return nil
}

func (registry *Registry) buildRecord(item StoredAgent) AgentRecord {
	record := AgentRecord{
		ID:          item.AgentID,
		Name:        item.Definition.Name,
		DisplayName: item.Definition.DisplayName,
		Description: item.Definition.Description,
		Status:      item.Status,
		Error:       item.Error,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Metadata:    item.Definition.Metadata,
	}

	if item.Status == StatusActive {
		record.A2AEndpoint = fmt.Sprintf(
			"%s/api/v1/agents/%s/invoke", registry.baseURL, item.Definition.Name,
		)
	}

	return record
}
