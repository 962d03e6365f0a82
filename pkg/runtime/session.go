package runtime

// Sessions hold conversation continuity for the engines. They are created
// lazily, keyed by session id, and shared across every task or invocation
// that presents the same id. The built-in store is an in-memory map safe
// for concurrent use; entries expire so abandoned conversations do not
// accumulate.

import (
	"sync"
	"time"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
)

// Session is one conversation held by the runtime.
type Session struct {
	ID string

	mu      sync.Mutex
	history []a2a.Message
}

// Append adds a turn to the session history.
func (session *Session) Append(msg a2a.Message) {
	session.mu.Lock()
	session.history = append(session.history, msg)
	session.mu.Unlock()
}

// History returns a copy of the conversation so far.
func (session *Session) History() []a2a.Message {
	session.mu.Lock()
	defer session.mu.Unlock()

	out := make([]a2a.Message, len(session.history))
	copy(out, session.history)
	return out
}

type sessionEntry struct {
	session   *Session
	expiresAt time.Time
}

// SessionStore creates and retrieves sessions by id.
type SessionStore struct {
	mu         sync.RWMutex
	data       map[string]*sessionEntry
	expiration time.Duration
}

func NewSessionStore() *SessionStore {
	store := &SessionStore{
		data:       make(map[string]*sessionEntry),
		expiration: 24 * time.Hour,
	}

	go store.cleanupExpired()

	return store
}

// GetOrCreate returns the session for the given id, creating it if absent
// or expired.
func (store *SessionStore) GetOrCreate(id string) *Session {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.data[id]

	if ok && time.Now().Before(entry.expiresAt) {
		entry.expiresAt = time.Now().Add(store.expiration)
		return entry.session
	}

	session := &Session{ID: id}
	store.data[id] = &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(store.expiration),
	}

	return session
}

// Get returns the session for the given id if it exists and has not expired.
func (store *SessionStore) Get(id string) (*Session, bool) {
	store.mu.RLock()
	entry, ok := store.data[id]
	store.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.session, true
}

// Delete removes a session.
func (store *SessionStore) Delete(id string) {
	store.mu.Lock()
	delete(store.data, id)
	store.mu.Unlock()
}

// Cleanup removes every expired session.
func (store *SessionStore) Cleanup() {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := time.Now()
	for id, entry := range store.data {
		if now.After(entry.expiresAt) {
			delete(store.data, id)
		}
	}
}

func (store *SessionStore) cleanupExpired() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		store.Cleanup()
	}
}
