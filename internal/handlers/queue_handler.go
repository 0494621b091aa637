package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type QueueHandler struct {
	sessionRepo  repositories.SessionRepository
	queueService services.QueueService
}

func NewQueueHandler(
	sessionRepo repositories.SessionRepository,
	queueService services.QueueService,
) *QueueHandler {
	return &QueueHandler{
		sessionRepo:  sessionRepo,
		queueService: queueService,
	}
}

// HandleAddDocuments handles POST /sessions/:id/documents
func (h *QueueHandler) HandleAddDocuments(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded. Send one or more documents in the 'files' field.",
		})
	}

	session.Lock()
	defer session.Unlock()

	if session.Processing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Queue is locked while a batch is being processed",
		})
	}

	accepted, rejected, err := h.queueService.AddFiles(session, files)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	status := fiber.StatusCreated
	if len(accepted) == 0 {
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(models.AddDocumentsResponse{
		Accepted: accepted,
		Rejected: rejected,
		Queue:    session.Queue.Documents(),
	})
}

// HandleRemoveDocument handles DELETE /sessions/:id/documents/:docID. Removal
// is idempotent: an absent identifier is a no-op, not an error.
func (h *QueueHandler) HandleRemoveDocument(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	docID, err := uuid.Parse(c.Params("docID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	session.Lock()
	defer session.Unlock()

	if session.Processing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Queue is locked while a batch is being processed",
		})
	}

	removed := h.queueService.Remove(session, docID)

	return c.JSON(fiber.Map{
		"removed": removed,
		"queue":   session.Queue.Documents(),
	})
}

// HandleClearQueue handles DELETE /sessions/:id/documents
func (h *QueueHandler) HandleClearQueue(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	if session.Processing() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Queue is locked while a batch is being processed",
		})
	}

	h.queueService.Clear(session)

	return c.JSON(fiber.Map{
		"queue": session.Queue.Documents(),
	})
}
