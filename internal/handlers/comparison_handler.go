package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type ComparisonHandler struct {
	sessionRepo repositories.SessionRepository
	engine      services.ComparisonEngine
}

func NewComparisonHandler(
	sessionRepo repositories.SessionRepository,
	engine services.ComparisonEngine,
) *ComparisonHandler {
	return &ComparisonHandler{
		sessionRepo: sessionRepo,
		engine:      engine,
	}
}

// HandleOpenComparison handles POST /sessions/:id/comparison
func (h *ComparisonHandler) HandleOpenComparison(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	if err := h.engine.Open(session); err != nil {
		return comparisonError(c, err)
	}

	view, err := h.engine.View(session)
	if err != nil {
		return comparisonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleCloseComparison handles DELETE /sessions/:id/comparison
func (h *ComparisonHandler) HandleCloseComparison(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	h.engine.Close(session)

	return c.JSON(fiber.Map{
		"message": "Comparison mode closed",
	})
}

// HandleGetComparison handles GET /sessions/:id/comparison
func (h *ComparisonHandler) HandleGetComparison(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	session.Lock()
	defer session.Unlock()

	view, err := h.engine.View(session)
	if err != nil {
		return comparisonError(c, err)
	}
	return c.JSON(view)
}

// HandleAddCandidate handles POST /sessions/:id/comparison/candidates
func (h *ComparisonHandler) HandleAddCandidate(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	var req models.ComparisonAddRequest
	if err := c.BodyParser(&req); err != nil || req.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "filename is required",
		})
	}

	session.Lock()
	defer session.Unlock()

	if err := h.engine.Add(session, req.Filename); err != nil {
		return comparisonError(c, err)
	}

	view, err := h.engine.View(session)
	if err != nil {
		return comparisonError(c, err)
	}
	return c.JSON(view)
}

// HandleRemoveCandidate handles DELETE /sessions/:id/comparison/candidates/:filename
func (h *ComparisonHandler) HandleRemoveCandidate(c *fiber.Ctx) error {
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

	if err := h.engine.Remove(session, filename); err != nil {
		return comparisonError(c, err)
	}

	view, err := h.engine.View(session)
	if err != nil {
		return comparisonError(c, err)
	}
	return c.JSON(view)
}

// comparisonError maps the engine's refusals onto HTTP statuses. Bound
// violations are conflicts so the UI can distinguish refusal from absence.
func comparisonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrSelectionFull),
		errors.Is(err, models.ErrSelectionAtMinimum),
		errors.Is(err, models.ErrAlreadySelected),
		errors.Is(err, models.ErrNotEnoughCandidates),
		errors.Is(err, services.ErrComparisonNotOpen):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrNotInResults),
		errors.Is(err, models.ErrNotInSelection),
		errors.Is(err, services.ErrNoResults):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrCandidateUnscored),
		errors.Is(err, services.ErrUnrankedResults):
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func decodeFilenameParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("filename"))
}
