package server

import (
	"sync"
	"time"

	"brawlhalla-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// disambiguationSession holds the name matches offered to one user while
// they pick. Redeeming or expiry removes it; expiry doubles as the bounded
// wait of the interactive prompt.
type disambiguationSession struct {
	userID     int64
	candidates []domain.PlayerSearchResult
	expiresAt  time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*disambiguationSession
	ttl      time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*disambiguationSession),
		ttl:      ttl,
	}
}

func (s *sessionStore) create(userID int64, candidates []domain.PlayerSearchResult) (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for t, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, t)
		}
	}

	s.sessions[token] = &disambiguationSession{
		userID:     userID,
		candidates: candidates,
		expiresAt:  now.Add(s.ttl),
	}
	return token, nil
}

// redeem consumes the session, only for the user it was created for. A
// missing or expired token, or someone else's, reads as the user having
// walked away from the prompt.
func (s *sessionStore) redeem(token string, userID int64) (*disambiguationSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || sess.userID != userID {
		return nil, false
	}
	delete(s.sessions, token)
	if time.Now().After(sess.expiresAt) {
		return nil, false
	}
	return sess, true
}
