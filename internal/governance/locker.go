package governance

import "sync"

// Locker serializes work per key, usually a proposal ID. Calls for the same key run one
// at a time, calls for different keys run concurrently. Idle entries are released.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates an empty Locker
func NewLocker() *Locker {
	return &Locker{locks: map[string]*keyLock{}}
}

// Do runs fn while holding the lock of key
func (l *Locker) Do(key string, fn func() error) error {
	lock := l.acquire(key)
	defer l.release(key, lock)

	return fn()
}

func (l *Locker) acquire(key string) *keyLock {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &keyLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (l *Locker) release(key string, lock *keyLock) {
	lock.mu.Unlock()

	l.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}

// size returns the number of keys with pending or running work
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
