// README: In-memory session store for ranked restaurant lists.
package recommend

import "sync"

// Store maps session ids to cached recommendation entries. It lives for the
// process lifetime and has no eviction; concurrent writers to the same session
// are last-write-wins.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Entry)}
}

func (s *Store) Get(sessionID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID]
	return entry, ok
}

// Put overwrites any existing entry for the session.
func (s *Store) Put(sessionID string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = entry
}
