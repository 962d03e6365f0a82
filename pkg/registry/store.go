package registry

import (
	"context"
	"sort"
	"sync"
	"time"
)

/*
StoredAgent is the serialized projection of an agent the store keeps: the
definition plus the lifecycle fields the registry owns. Runnable instances
are never persisted; they are rebuilt from the definition on demand.
*/
type StoredAgent struct {
	AgentID    string          `json:"agent_id"`
	Definition AgentDefinition `json:"definition"`
	Status     AgentStatus     `json:"status"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

/*
AgentStore abstracts where agent definitions live. The registry selects one
implementation at construction: the in-memory store for transient
deployments, the S3 store when durable storage is configured. Get returns
ok=false for unknown names; only infrastructure failures surface as errors.
*/
type AgentStore interface {
	Save(ctx context.Context, def AgentDefinition, agentID string, status AgentStatus) (StoredAgent, error)
	Get(ctx context.Context, name string) (StoredAgent, bool, error)
	UpdateStatus(ctx context.Context, name string, status AgentStatus, deployError string) error
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]StoredAgent, int, error)
}

/*
MemoryStore is the in-memory AgentStore. Listing preserves insertion
order. Safe for concurrent use.
*/
type MemoryStore struct {
	mu     sync.RWMutex
	agents map[string]StoredAgent
	order  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		agents: make(map[string]StoredAgent),
	}
}

func (store *MemoryStore) Save(
	ctx context.Context, def AgentDefinition, agentID string, status AgentStatus,
) (StoredAgent, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := time.Now().UTC()
	item := StoredAgent{
		AgentID:    agentID,
		Definition: def,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if existing, ok := store.agents[def.Name]; ok {
		// Upsert keeps the original creation time and list position.
		item.CreatedAt = existing.CreatedAt
	} else {
		store.order = append(store.order, def.Name)
	}

	store.agents[def.Name] = item
	return item, nil
}

func (store *MemoryStore) Get(
	ctx context.Context, name string,
) (StoredAgent, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	item, ok := store.agents[name]
	return item, ok, nil
}

func (store *MemoryStore) UpdateStatus(
	ctx context.Context, name string, status AgentStatus, deployError string,
) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	item, ok := store.agents[name]
	if !ok {
		return nil
	}

	item.Status = status
	item.Error = deployError
	item.UpdatedAt = time.Now().UTC()
	store.agents[name] = item
	return nil
}

func (store *MemoryStore) Delete(
	ctx context.Context, name string,
) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.agents[name]; !ok {
		return false, nil
	}

	delete(store.agents, name)

	for i, n := range store.order {
		if n == name {
			store.order = append(store.order[:i], store.order[i+1:]...)
			break
		}
	}

	return true, nil
}

func (store *MemoryStore) List(
	ctx context.Context, page, pageSize int,
) ([]StoredAgent, int, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	total := len(store.order)
	items := make([]StoredAgent, 0, total)

	for _, name := range store.order {
		items = append(items, store.agents[name])
	}

	return paginate(items, page, pageSize), total, nil
}

// paginate slices one 1-indexed page out of items. Out-of-range pages
// yield an empty slice.
func paginate(items []StoredAgent, page, pageSize int) []StoredAgent {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []StoredAgent{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// sortByCreatedDesc orders items newest first, the listing order of the
// durable store.
func sortByCreatedDesc(items []StoredAgent) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
