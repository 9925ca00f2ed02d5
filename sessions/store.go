package sessions

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"travelpro/services"
	"travelpro/travelers"
)

// Session owns the traveler registry of one conversation.
type Session struct {
	ID        string
	CreatedAt time.Time
	Travelers *travelers.Registry
}

// Store keeps sessions in memory for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (s *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Travelers: travelers.NewRegistry(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	log.Printf("✅ Session %s created", sess.ID)
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, services.NotFoundError{Resource: "session", Name: id}
	}
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return services.NotFoundError{Resource: "session", Name: id}
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
