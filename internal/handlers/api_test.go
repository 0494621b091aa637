package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
	"resume-screener/internal/services"
)

// stubScreeningClient scores whatever it receives with the canned outcome.
type stubScreeningClient struct {
	requirements *models.JobRequirements
	analyzeErr   error

	batchErr error
	scores   map[string]float64
}

func (s *stubScreeningClient) AnalyzeJob(ctx context.Context, description, title, company string) (*models.JobRequirements, error) {
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	return s.requirements, nil
}

func (s *stubScreeningClient) ScoreBatch(ctx context.Context, description, jobTitle string, docs []*models.CandidateDocument) (*services.BatchResult, error) {
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	results := make([]models.ScoredCandidate, 0, len(docs))
	for _, doc := range docs {
		results = append(results, models.ScoredCandidate{
			Filename:     doc.OriginalFilename,
			OverallScore: s.scores[doc.OriginalFilename],
		})
	}
	return &services.BatchResult{Results: results, ProcessingTimeSeconds: 1.5}, nil
}

// syncWorker runs the submission inline so tests observe the resolved state on
// the next request.
type syncWorker struct {
	submitter services.BatchSubmitter
}

func (w *syncWorker) Start(ctx context.Context) {}
func (w *syncWorker) Stop()                     {}

func (w *syncWorker) EnqueueBatch(session *models.Session) {
	_ = w.submitter.ProcessBatch(context.Background(), session)
}

func newTestApp(t *testing.T, client services.ScreeningClient) (*fiber.App, repositories.SessionRepository) {
	t.Helper()

	zlog := zap.NewNop()
	storage := services.NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	sessionRepo := repositories.NewSessionRepository()
	queueService := services.NewQueueService(storage, 1<<20, zlog)
	submitter := services.NewBatchSubmitter(client, services.NewResultAggregator(), zlog)
	worker := &syncWorker{submitter: submitter}
	engine := services.NewComparisonEngine()

	sessionHandler := NewSessionHandler(sessionRepo, queueService, client)
	queueHandler := NewQueueHandler(sessionRepo, queueService)
	batchHandler := NewBatchHandler(sessionRepo, worker)
	comparisonHandler := NewComparisonHandler(sessionRepo, engine)
	exportHandler := NewExportHandler(sessionRepo)

	app := fiber.New()
	api := app.Group("/api/v1")

	api.Post("/sessions", sessionHandler.HandleCreateSession)
	api.Get("/sessions/:id", sessionHandler.HandleGetSession)
	api.Delete("/sessions/:id", sessionHandler.HandleDeleteSession)
	api.Post("/sessions/:id/job", sessionHandler.HandleAnalyzeJob)

	api.Post("/sessions/:id/documents", queueHandler.HandleAddDocuments)
	api.Delete("/sessions/:id/documents/:docID", queueHandler.HandleRemoveDocument)
	api.Delete("/sessions/:id/documents", queueHandler.HandleClearQueue)

	api.Post("/sessions/:id/process", batchHandler.HandleStartProcessing)
	api.Get("/sessions/:id/results", batchHandler.HandleGetResults)
	api.Get("/sessions/:id/results/:filename", batchHandler.HandleGetCandidate)

	api.Post("/sessions/:id/comparison", comparisonHandler.HandleOpenComparison)
	api.Get("/sessions/:id/comparison", comparisonHandler.HandleGetComparison)
	api.Delete("/sessions/:id/comparison", comparisonHandler.HandleCloseComparison)
	api.Post("/sessions/:id/comparison/candidates", comparisonHandler.HandleAddCandidate)
	api.Delete("/sessions/:id/comparison/candidates/:filename", comparisonHandler.HandleRemoveCandidate)

	api.Get("/sessions/:id/export", exportHandler.HandleExport)

	return app, sessionRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]json.RawMessage{}
	if len(data) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(data, &parsed))
	}
	return resp, parsed
}

func uploadDocuments(t *testing.T, app *fiber.App, sessionID string, names ...string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+sessionID+"/documents", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var id string
	require.NoError(t, json.Unmarshal(body["id"], &id))
	return id
}

func TestWorkflowEndToEnd(t *testing.T) {
	client := &stubScreeningClient{
		scores: map[string]float64{
			"alice.pdf": 91,
			"bob.pdf":   73,
			"cara.docx": 58,
		},
	}
	app, _ := newTestApp(t, client)

	sessionID := createSession(t, app)

	// Upload three resumes plus one file the queue must refuse.
	resp := uploadDocuments(t, app, sessionID, "alice.pdf", "bob.pdf", "cara.docx", "notes.txt")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var added models.AddDocumentsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&added))
	assert.Len(t, added.Accepted, 3)
	require.Len(t, added.Rejected, 1)
	assert.Equal(t, "notes.txt", added.Rejected[0].Filename)

	// Start the batch; the test worker resolves it inline.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+sessionID+"/results", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Re-fetch raw to decode the typed shape.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/results", nil)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	var results models.ResultsResponse
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&results))

	assert.False(t, results.Processing)
	require.Len(t, results.Results, 3)
	assert.Equal(t, "alice.pdf", results.Results[0].Filename)
	assert.Equal(t, 1, results.Results[0].Rank)
	require.NotNil(t, results.Summary)
	assert.Equal(t, 3, results.Summary.SuccessfullyProcessed)
	for _, doc := range results.Documents {
		assert.Equal(t, models.StatusCompleted, doc.Status)
	}

	// Comparison opens over the top three.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/comparison", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Export the ranked results as CSV.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/export?scope=results", nil)
	raw, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, raw.StatusCode)
	assert.Equal(t, "text/csv", raw.Header.Get(fiber.HeaderContentType))
	csvBody, err := io.ReadAll(raw.Body)
	require.NoError(t, err)
	assert.Contains(t, string(csvBody), "alice.pdf")

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/sessions/"+sessionID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBatchFailureKeepsQueueForRetry(t *testing.T) {
	client := &stubScreeningClient{
		batchErr: fmt.Errorf("batch-score call failed: %w", context.DeadlineExceeded),
	}
	app, _ := newTestApp(t, client)

	sessionID := createSession(t, app)
	resp := uploadDocuments(t, app, sessionID, "alice.pdf", "bob.pdf")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/results", nil)
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	var results models.ResultsResponse
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&results))

	assert.False(t, results.Processing)
	assert.Empty(t, results.Results)
	assert.Equal(t, services.GenericFailureMessage, results.ErrorMessage)
	require.Len(t, results.Documents, 2)
	for _, doc := range results.Documents {
		assert.Equal(t, models.StatusError, doc.Status)
	}

	// The queue survives the failure; a retry can succeed.
	client.batchErr = nil
	client.scores = map[string]float64{"alice.pdf": 90, "bob.pdf": 70}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID+"/results", nil)
	raw, err = app.Test(req, -1)
	require.NoError(t, err)
	results = models.ResultsResponse{}
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&results))
	assert.Empty(t, results.ErrorMessage)
	assert.Len(t, results.Results, 2)
}

func TestProcessRefusedOnEmptyQueue(t *testing.T) {
	app, _ := newTestApp(t, &stubScreeningClient{})

	sessionID := createSession(t, app)
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body["error"]), "no documents queued")
}

func TestQueueLockedWhileProcessing(t *testing.T) {
	app, repo := newTestApp(t, &stubScreeningClient{})

	session := repo.Create()
	session.Lock()
	require.True(t, session.TryBeginProcessing())
	session.Unlock()

	resp := uploadDocuments(t, app, session.ID.String(), "late.pdf")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/sessions/"+session.ID.String()+"/documents", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A second start is refused while the first is outstanding.
	session.Lock()
	session.Queue.Append(&models.CandidateDocument{})
	session.Unlock()
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/process", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSessionNotFound(t *testing.T) {
	app, _ := newTestApp(t, &stubScreeningClient{})

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/sessions/0b6f7f62-16a1-4f84-9e58-000000000000/results", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/sessions/not-a-uuid/results", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestComparisonEndpoints(t *testing.T) {
	client := &stubScreeningClient{
		scores: map[string]float64{
			"a.pdf": 95, "b.pdf": 90, "c.pdf": 85, "d.pdf": 80, "e.pdf": 75,
		},
	}
	app, _ := newTestApp(t, client)

	sessionID := createSession(t, app)
	uploadDocuments(t, app, sessionID, "a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf")
	doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)

	// Comparison before opening is a conflict, not a server error.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+sessionID+"/comparison", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/comparison", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Grow to four, then the fifth is refused.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/comparison/candidates",
		models.ComparisonAddRequest{Filename: "d.pdf"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/comparison/candidates",
		models.ComparisonAddRequest{Filename: "e.pdf"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Unknown candidate is absence, not refusal.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/sessions/"+sessionID+"/comparison/candidates/ghost.pdf", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/sessions/"+sessionID+"/comparison", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCandidateDetailSegmentsJustification(t *testing.T) {
	client := &stubScreeningClient{scores: map[string]float64{"a.pdf": 88, "b.pdf": 60}}
	app, repo := newTestApp(t, client)

	sessionID := createSession(t, app)
	uploadDocuments(t, app, sessionID, "a.pdf", "b.pdf")
	doJSON(t, app, http.MethodPost, "/api/v1/sessions/"+sessionID+"/process", nil)

	// Attach a structured justification to the stored result.
	session, err := repo.FindByID(mustParseUUID(t, sessionID))
	require.NoError(t, err)
	session.Lock()
	session.Results[0].Justification = "Technical Competency: excellent Go depth.\nOverall Assessment: hire."
	session.Unlock()

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/sessions/"+sessionID+"/results/a.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sections services.JustificationSections
	require.NoError(t, json.Unmarshal(body["justification"], &sections))
	assert.Equal(t, "excellent Go depth.", sections.TechnicalCompetency)
	assert.Equal(t, "hire.", sections.OverallAssessment)

	var category string
	require.NoError(t, json.Unmarshal(body["category"], &category))
	assert.Equal(t, string(services.CategoryExcellent), category)
}
