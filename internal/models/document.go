package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusError      DocumentStatus = "error"
)

// CandidateDocument is one queued resume. The binary content lives on disk under
// the upload directory for the lifetime of the session; the queue only carries
// the handle.
type CandidateDocument struct {
	ID               uuid.UUID      `json:"id"`
	OriginalFilename string         `json:"original_filename"`
	StoredFilename   string         `json:"-"`
	FilePath         string         `json:"-"`
	Size             int64          `json:"size"`
	Status           DocumentStatus `json:"status"`
	AddedAt          time.Time      `json:"added_at"`
}

// RejectedFile reports a single document that failed the add-time constraints.
// Other documents in the same call are unaffected.
type RejectedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}
