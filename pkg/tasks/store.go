package tasks

import (
	"sync"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
)

/*
Store holds tasks by id. The built-in implementation is an in-memory map
safe for concurrent use; a persistent implementation can be swapped in
without touching the manager.
*/
type Store interface {
	Get(id string) (*a2a.Task, bool)
	Put(task *a2a.Task)
	Delete(id string)
}

// MemoryStore is the default Store.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*a2a.Task),
	}
}

func (store *MemoryStore) Get(id string) (*a2a.Task, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	task, ok := store.tasks[id]
	return task, ok
}

func (store *MemoryStore) Put(task *a2a.Task) {
	store.mu.Lock()
	store.tasks[task.ID] = task
	store.mu.Unlock()
}

func (store *MemoryStore) Delete(id string) {
	store.mu.Lock()
	delete(store.tasks, id)
	store.mu.Unlock()
}
