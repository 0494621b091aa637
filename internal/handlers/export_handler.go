package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"resume-screener/internal/metrics"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

type ExportHandler struct {
	sessionRepo repositories.SessionRepository
}

func NewExportHandler(sessionRepo repositories.SessionRepository) *ExportHandler {
	return &ExportHandler{
		sessionRepo: sessionRepo,
	}
}

// HandleExport handles GET /sessions/:id/export?scope=results|comparison.
// The CSV is generated on demand; nothing is stored.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	session, ok := findSession(c, h.sessionRepo)
	if !ok {
		return nil
	}

	scope := c.Query("scope", "results")

	session.Lock()

	var table [][]string
	switch scope {
	case "results":
		if len(session.Results) == 0 {
			session.Unlock()
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No batch results to export",
			})
		}
		table = services.BuildResultsTable(session.Results)
	case "comparison":
		if session.Comparison == nil {
			session.Unlock()
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": services.ErrComparisonNotOpen.Error(),
			})
		}
		table = services.BuildComparisonTable(session.Comparison.Candidates())
	default:
		session.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scope must be 'results' or 'comparison'",
		})
	}

	session.Unlock()

	var buf bytes.Buffer
	if err := services.WriteCSV(&buf, table); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	metrics.ExportsGenerated.WithLabelValues(scope).Inc()

	filename := fmt.Sprintf("screening_%s_%s.csv", scope, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Send(buf.Bytes())
}
