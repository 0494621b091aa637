package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session owns one batch resume workflow: the file queue, the analyzed job
// requirements, the canonical result list and the comparison selection. There
// is no cross-session sharing; every piece of workflow state hangs off exactly
// one session.
type Session struct {
	mu sync.Mutex

	ID        uuid.UUID
	CreatedAt time.Time

	Queue *FileQueue

	JobTitle       string
	Company        string
	JobDescription string
	Requirements   *JobRequirements

	Results    RankedResults
	Summary    *BatchSummary
	Comparison *ComparisonSelection

	// LastError carries the single workflow-level failure notification from the
	// most recent batch attempt; cleared when a new attempt starts.
	LastError string

	processing bool
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Queue:     NewFileQueue(),
	}
}

// Lock serializes access to the session's workflow state. The HTTP layer is
// concurrent even though each workflow is logically single-writer.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// TryBeginProcessing flips the in-flight flag. It returns false while a prior
// batch has not resolved: the queue's processing state is a single shared flag,
// not a per-call token, so at most one submission may be outstanding.
// Callers must hold the session lock.
func (s *Session) TryBeginProcessing() bool {
	if s.processing {
		return false
	}
	s.processing = true
	return true
}

// EndProcessing marks the in-flight batch as resolved. Callers must hold the
// session lock.
func (s *Session) EndProcessing() {
	s.processing = false
}

// Processing reports whether a batch is outstanding. Callers must hold the
// session lock.
func (s *Session) Processing() bool {
	return s.processing
}
