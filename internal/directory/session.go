// Package directory holds the per-browser state of the groups and users
// directory: the lists loaded for each tab, reused until refreshed.
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/crucial707/pfconsole/internal/ids"
	"github.com/crucial707/pfconsole/internal/metrics"
	"github.com/crucial707/pfconsole/internal/models"
)

// Tab names.
const (
	TabGroups = "groups"
	TabUsers  = "users"
)

// Loader fetches the directory lists.
type Loader interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Session is the directory state of one browser. Each tab is loaded on first
// use and then served from memory until Invalidate is called.
type Session struct {
	mu           sync.Mutex
	groups       []models.Group
	groupsLoaded bool
	users        []models.User
	usersLoaded  bool
	lastSeen     time.Time
}

// Groups returns the loaded groups, fetching them on first use. A failed
// fetch leaves the tab unloaded.
func (s *Session) Groups(ctx context.Context, l Loader) ([]models.Group, error) {
	s.mu.Lock()
	if s.groupsLoaded {
		g := s.groups
		s.mu.Unlock()
		return g, nil
	}
	s.mu.Unlock()

	groups, err := l.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.groups, s.groupsLoaded = groups, true
	s.mu.Unlock()
	return groups, nil
}

// Users returns the loaded users, fetching them on first use.
func (s *Session) Users(ctx context.Context, l Loader) ([]models.User, error) {
	s.mu.Lock()
	if s.usersLoaded {
		u := s.users
		s.mu.Unlock()
		return u, nil
	}
	s.mu.Unlock()

	users, err := l.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.users, s.usersLoaded = users, true
	s.mu.Unlock()
	return users, nil
}

// Invalidate drops a tab so its next use refetches.
func (s *Session) Invalidate(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch tab {
	case TabGroups:
		s.groups, s.groupsLoaded = nil, false
	case TabUsers:
		s.users, s.usersLoaded = nil, false
	}
}

// Store maps session keys to sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns a Store whose sessions expire after ttl without use.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for key, creating one under a new key when key is
// unknown. The returned key is the one to hand back to the browser.
func (st *Store) Get(key string) (*Session, string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[key]; ok && key != "" {
		s.mu.Lock()
		s.lastSeen = st.now()
		s.mu.Unlock()
		return s, key
	}
	key = ids.New()
	s := &Session{lastSeen: st.now()}
	st.sessions[key] = s
	metrics.SetDirectorySessions(len(st.sessions))
	return s, key
}

// Sweep removes sessions idle longer than the TTL and returns how many it removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	cutoff := st.now().Add(-st.ttl)
	removed := 0
	for k, s := range st.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(st.sessions, k)
			removed++
		}
	}
	metrics.SetDirectorySessions(len(st.sessions))
	return removed
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
