package service

import "sync"

// noteLocks hands out one mutex per note id. Version numbering reads the
// current maximum and inserts maximum+1; the document store has no
// cross-document transaction, so concurrent snapshot requests on the same
// note must be serialized here to keep the sequence gapless.
type noteLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newNoteLocks() *noteLocks {
	return &noteLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *noteLocks) get(noteID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[noteID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[noteID] = lock
	}
	return lock
}
