package models

import "github.com/google/uuid"

// FileQueue holds the candidate documents awaiting or undergoing scoring for one
// session. It preserves insertion order, which is also the submission order. The
// queue is owned by exactly one session; callers synchronize through the session
// lock.
type FileQueue struct {
	docs []*CandidateDocument
}

func NewFileQueue() *FileQueue {
	return &FileQueue{}
}

// Append adds an already-validated document in pending status at the tail.
func (q *FileQueue) Append(doc *CandidateDocument) {
	doc.Status = StatusPending
	q.docs = append(q.docs, doc)
}

// Remove drops exactly one document and reports whether it was present. Calling
// it again with the same identifier is a no-op.
func (q *FileQueue) Remove(id uuid.UUID) (*CandidateDocument, bool) {
	for i, doc := range q.docs {
		if doc.ID == id {
			q.docs = append(q.docs[:i], q.docs[i+1:]...)
			return doc, true
		}
	}
	return nil, false
}

// Clear removes all documents unconditionally and returns what was removed so
// the caller can release the stored files.
func (q *FileQueue) Clear() []*CandidateDocument {
	removed := q.docs
	q.docs = nil
	return removed
}

// Documents returns the queue snapshot in insertion order.
func (q *FileQueue) Documents() []*CandidateDocument {
	out := make([]*CandidateDocument, len(q.docs))
	copy(out, q.docs)
	return out
}

func (q *FileQueue) Len() int {
	return len(q.docs)
}

// SetAllStatus flips every queued document to the given status. Batch dispatch
// and batch completion are single atomic flips across the whole queue.
func (q *FileQueue) SetAllStatus(status DocumentStatus) {
	for _, doc := range q.docs {
		doc.Status = status
	}
}
