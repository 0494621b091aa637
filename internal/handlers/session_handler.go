package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type SessionHandler struct {
	sessionRepo  repositories.SessionRepository
	queueService services.QueueService
	client       services.ScreeningClient
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	queueService services.QueueService,
	client services.ScreeningClient,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo:  sessionRepo,
		queueService: queueService,
		client:       client,
	}
}

// HandleCreateSession handles POST /sessions
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	session := h.sessionRepo.Create()

	return c.Status(fiber.StatusCreated).JSON(models.SessionResponse{
		ID:        session.ID.String(),
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
	})
}

// HandleGetSession handles GET /sessions/:id
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	return c.JSON(fiber.Map{
		"id":           session.ID.String(),
		"created_at":   session.CreatedAt.Format(time.RFC3339),
		"job_title":    session.JobTitle,
		"company":      session.Company,
		"job_analyzed": session.Requirements != nil,
		"queue":        session.Queue.Documents(),
		"processing":   session.Processing(),
		"has_results":  len(session.Results) > 0,
	})
}

// HandleDeleteSession handles DELETE /sessions/:id
func (h *SessionHandler) HandleDeleteSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessionRepo.Delete(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	session.Lock()
	h.queueService.ReleaseAll(session)
	session.Unlock()

	return c.JSON(fiber.Map{
		"message": "Session deleted",
	})
}

// HandleAnalyzeJob handles POST /sessions/:id/job
func (h *SessionHandler) HandleAnalyzeJob(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	var req models.AnalyzeJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Job description cannot be empty",
		})
	}

	requirements, err := h.client.AnalyzeJob(c.Context(), req.Description, req.Title, req.Company)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session.Lock()
	session.JobDescription = req.Description
	session.JobTitle = req.Title
	session.Company = req.Company
	session.Requirements = requirements
	session.Unlock()

	return c.JSON(fiber.Map{
		"job_title":    req.Title,
		"company":      req.Company,
		"requirements": requirements,
	})
}

// findSession resolves the :id route param against the repository. When it
// returns false the error response has already been written.
func findSession(c *fiber.Ctx, repo repositories.SessionRepository) (*models.Session, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
		return nil, false
	}

	session, err := repo.FindByID(id)
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
		return nil, false
	}
	return session, true
}
