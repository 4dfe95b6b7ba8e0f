// Package session serialises writers of one shopper session.
package session

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locks is a set of per-session mutexes. Entries are dropped once no
// goroutine holds or waits on them.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func NewLocks() *Locks {
	return &Locks{locks: map[string]*lockEntry{}}
}

// Lock blocks until the session is free and returns its unlock function.
func (l *Locks) Lock(sessionID string) func() {
	l.mu.Lock()
	e, ok := l.locks[sessionID]
	if !ok {
		e = &lockEntry{}
		l.locks[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, sessionID)
			}
			l.mu.Unlock()
		})
	}
}

func (l *Locks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
