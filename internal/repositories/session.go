package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"resume-screener/internal/models"
)

// SessionRepository holds workflow sessions for the life of the process.
// Nothing outlives it: results, queues and comparison state all disappear with
// the session.
type SessionRepository interface {
	Create() *models.Session
	FindByID(id uuid.UUID) (*models.Session, error)
	Delete(id uuid.UUID) (*models.Session, error)
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

func (r *sessionRepository) Create() *models.Session {
	session := models.NewSession()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session

	return session
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (r *sessionRepository) Delete(id uuid.UUID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	delete(r.sessions, id)
	return session, nil
}
