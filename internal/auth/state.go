package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

const stateTTL = 5 * time.Minute

// stateStore hands out single-use OAuth state values that expire after ttl.
type stateStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	issued map[string]time.Time
}

func newStateStore(ttl time.Duration) *stateStore {
	return &stateStore{
		ttl:    ttl,
		now:    time.Now,
		issued: make(map[string]time.Time),
	}
}

// issue returns a new random state and drops the expired ones.
func (s *stateStore) issue() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for st, exp := range s.issued {
		if !now.Before(exp) {
			delete(s.issued, st)
		}
	}
	s.issued[state] = now.Add(s.ttl)

	return state, nil
}

// consume reports whether state was issued and is still valid. A state is
// accepted at most once.
func (s *stateStore) consume(state string) bool {
	if state == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.issued[state]
	if !ok {
		return false
	}
	delete(s.issued, state)

	return s.now().Before(exp)
}
