package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/metrics"
	"resume-screener/internal/models"
)

// AllowedExtensions is the fixed media allow-list for candidate documents.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type QueueService interface {
	AddFiles(session *models.Session, files []*multipart.FileHeader) ([]*models.CandidateDocument, []models.RejectedFile, error)
	Remove(session *models.Session, id uuid.UUID) bool
	Clear(session *models.Session)
	ReleaseAll(session *models.Session)
}

type queueService struct {
	storage     StorageService
	maxFileSize int64
	logger      *zap.Logger
}

func NewQueueService(storage StorageService, maxFileSize int64, logger *zap.Logger) QueueService {
	return &queueService{
		storage:     storage,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// AddFiles validates each upload against the allow-list and the size ceiling,
// stores the accepted ones and appends them to the session queue in arrival
// order. A rejected file never aborts acceptance of the others. Callers hold
// the session lock.
func (q *queueService) AddFiles(
	session *models.Session,
	files []*multipart.FileHeader,
) ([]*models.CandidateDocument, []models.RejectedFile, error) {
	var accepted []*models.CandidateDocument
	var rejected []models.RejectedFile

	for _, file := range files {
		if reason := q.validate(file); reason != "" {
			rejected = append(rejected, models.RejectedFile{
				Filename: file.Filename,
				Reason:   reason,
			})
			metrics.DocumentsRejected.WithLabelValues(rejectReasonLabel(reason)).Inc()
			q.logger.Warn("document rejected",
				zap.String("filename", file.Filename),
				zap.String("reason", reason),
			)
			continue
		}

		storedName, filePath, err := q.storage.SaveFile(file)
		if err != nil {
			return accepted, rejected, fmt.Errorf("failed to store %s: %w", file.Filename, err)
		}

		doc := &models.CandidateDocument{
			ID:               uuid.New(),
			OriginalFilename: file.Filename,
			StoredFilename:   storedName,
			FilePath:         filePath,
			Size:             file.Size,
			AddedAt:          time.Now(),
		}
		session.Queue.Append(doc)
		accepted = append(accepted, doc)
		metrics.DocumentsAccepted.Inc()

		q.logger.Info("document queued",
			zap.String("session", session.ID.String()),
			zap.String("filename", file.Filename),
			zap.Int64("size", file.Size),
		)
	}

	return accepted, rejected, nil
}

// Remove drops one document and its stored file. Absent identifiers are a
// no-op, so a repeated remove is indistinguishable from a single one.
func (q *queueService) Remove(session *models.Session, id uuid.UUID) bool {
	doc, found := session.Queue.Remove(id)
	if !found {
		return false
	}

	if err := q.storage.DeleteFile(doc.StoredFilename); err != nil {
		q.logger.Warn("failed to delete stored file",
			zap.String("filename", doc.StoredFilename),
			zap.Error(err),
		)
	}
	return true
}

// Clear empties the queue and releases every stored file.
func (q *queueService) Clear(session *models.Session) {
	for _, doc := range session.Queue.Clear() {
		if err := q.storage.DeleteFile(doc.StoredFilename); err != nil {
			q.logger.Warn("failed to delete stored file",
				zap.String("filename", doc.StoredFilename),
				zap.Error(err),
			)
		}
	}
}

// ReleaseAll is Clear for session teardown.
func (q *queueService) ReleaseAll(session *models.Session) {
	q.Clear(session)
}

func (q *queueService) validate(file *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !AllowedExtensions[ext] {
		return fmt.Sprintf("unsupported file format %q: upload PDF, DOC, or DOCX files", ext)
	}
	if file.Size > q.maxFileSize {
		return fmt.Sprintf("file too large: maximum size is %d bytes", q.maxFileSize)
	}
	return ""
}

func rejectReasonLabel(reason string) string {
	if strings.HasPrefix(reason, "file too large") {
		return "too_large"
	}
	return "unsupported_format"
}
