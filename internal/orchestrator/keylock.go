package orchestrator

import "sync"

// keyLocks provides per-ContentKey mutual exclusion. At most one fetch may
// be in its Fetching/Ingesting states for a given key; latecomers block on
// the same lock and observe the cache hit once the winner commits.
// Lock entries are reference-counted so the map never grows unbounded.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// acquire blocks until the key's lock is held and returns the release func.
func (k *keyLocks) acquire(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyLock)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &keyLock{}
		k.locks[key] = lock
	}
	lock.refs++
	k.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		k.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
