package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type BatchHandler struct {
	sessionRepo repositories.SessionRepository
	worker      services.BatchWorker
}

func NewBatchHandler(
	sessionRepo repositories.SessionRepository,
	worker services.BatchWorker,
) *BatchHandler {
	return &BatchHandler{
		sessionRepo: sessionRepo,
		worker:      worker,
	}
}

// HandleStartProcessing handles POST /sessions/:id/process. An empty queue is
// refused before anything is dispatched; a second start while a batch is
// outstanding is refused because per-document status is a single shared flag.
func (h *BatchHandler) HandleStartProcessing(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()

	if session.Queue.Len() == 0 {
		session.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrEmptyQueue.Error(),
		})
	}

	if session.Queue.Len() > services.MaxBatchSize {
		session.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrBatchTooLarge.Error(),
		})
	}

	if !session.TryBeginProcessing() {
		session.Unlock()
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": services.ErrBatchInFlight.Error(),
		})
	}

	session.Unlock()

	h.worker.EnqueueBatch(session)

	return c.Status(fiber.StatusAccepted).JSON(models.ProcessResponse{
		ID:     session.ID.String(),
		Status: string(models.StatusProcessing),
	})
}

// HandleGetResults handles GET /sessions/:id/results
func (h *BatchHandler) HandleGetResults(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	return c.JSON(models.ResultsResponse{
		Processing:   session.Processing(),
		Documents:    session.Queue.Documents(),
		Results:      session.Results,
		Summary:      session.Summary,
		ErrorMessage: session.LastError,
	})
}

// HandleGetCandidate handles GET /sessions/:id/results/:filename — one
// candidate's detail, with the justification segmented best-effort.
func (h *BatchHandler) HandleGetCandidate(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	filename, err := decodeFilenameParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid filename parameter",
		})
	}

	session.Lock()
	defer session.Unlock()

	candidate, found := session.Results.ByFilename(filename)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found in results",
		})
	}

	return c.JSON(fiber.Map{
		"candidate":     candidate,
		"category":      services.Categorize(candidate.OverallScore),
		"tier":          services.Categorize(candidate.OverallScore).Tier(),
		"justification": services.ParseJustification(candidate.Justification),
	})
}
