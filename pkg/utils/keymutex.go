package utils

import "sync"

/*
KeyMutex provides one exclusive section per string key, so mutations on the
same agent name or task id never interleave while unrelated keys proceed
concurrently. Mutexes are created on first use and never reclaimed; the key
space here (agent names, task ids) is small enough that this does not
matter in practice.
*/
type KeyMutex struct {
	locks sync.Map
}

// Lock acquires the mutex for key and returns the unlock function.
func (km *KeyMutex) Lock(key string) func() {
	actual, _ := km.locks.LoadOrStore(key, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
