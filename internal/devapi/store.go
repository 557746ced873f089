package devapi

import (
	"sync"
	"time"
)

type challenge struct {
	secret    string
	expiresAt time.Time
	attempts  int
}

// ChallengeStore keeps the TOTP secret of the latest code sent to each
// admin. Issuing a new code replaces the previous secret, so only the most
// recent code verifies.
type ChallengeStore struct {
	mu          sync.Mutex
	m           map[string]challenge
	maxAttempts int
	nowF        func() time.Time
}

// NewChallengeStore returns an empty store. A challenge is dropped after
// maxAttempts failed verifications; non-positive means unlimited.
func NewChallengeStore(maxAttempts int, now func() time.Time) *ChallengeStore {
	if now == nil {
		now = time.Now
	}
	return &ChallengeStore{
		m:           make(map[string]challenge),
		maxAttempts: maxAttempts,
		nowF:        now,
	}
}

// Put stores secret for email until expiresAt.
func (s *ChallengeStore) Put(email, secret string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[email] = challenge{secret: secret, expiresAt: expiresAt}
}

// Get returns the secret for email if present and not expired.
func (s *ChallengeStore) Get(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.m[email]
	if !ok {
		return "", false
	}
	if !c.expiresAt.After(s.nowF()) {
		delete(s.m, email)
		return "", false
	}
	return c.secret, true
}

// Fail records a wrong code and reports whether the challenge is still usable.
func (s *ChallengeStore) Fail(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.m[email]
	if !ok {
		return false
	}
	c.attempts++
	if s.maxAttempts > 0 && c.attempts >= s.maxAttempts {
		delete(s.m, email)
		return false
	}
	s.m[email] = c
	return true
}

// Delete removes the challenge for email. Codes are single use.
func (s *ChallengeStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, email)
}

// Purge removes every expired challenge and returns how many were removed.
func (s *ChallengeStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowF()
	n := 0
	for email, c := range s.m {
		if !c.expiresAt.After(now) {
			delete(s.m, email)
			n++
		}
	}
	return n
}
