package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"resume-screener/internal/models"
)

const (
	analyzeJobPath = "/api/v1/analysis/analyze-job"
	batchScorePath = "/api/v1/scoring/batch-score-resumes"
)

// GenericFailureMessage is the fallback notification when the screening
// service gives no detail for a failed batch.
const GenericFailureMessage = "batch processing failed: the screening service did not complete the request"

// ServiceError carries the screening service's human-readable detail message
// from a non-success response. Transport and timeout failures stay plain
// wrapped errors.
type ServiceError struct {
	Detail string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("screening service error: %s", e.Detail)
}

// BatchResult is the screening service's successful batch response, already
// mapped onto the canonical shapes.
type BatchResult struct {
	Results               []models.ScoredCandidate
	TotalFiles            int
	SuccessfullyProcessed int
	AverageScore          float64
	TopScore              float64
	ProcessingTimeSeconds float64
}

type ScreeningClient interface {
	AnalyzeJob(ctx context.Context, description, title, company string) (*models.JobRequirements, error)
	ScoreBatch(ctx context.Context, description, jobTitle string, docs []*models.CandidateDocument) (*BatchResult, error)
}

type screeningClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewScreeningClient builds the HTTP client for the remote scoring/analysis
// service. The timeout is the only bound on the single in-flight suspension;
// there is no mid-flight cancel.
func NewScreeningClient(baseURL string, timeout time.Duration, logger *zap.Logger) ScreeningClient {
	return &screeningClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

type jobAnalysisWire struct {
	RequiredSkills    map[string][]string `json:"required_skills"`
	MinimumExperience *float64            `json:"minimum_experience"`
	EducationReqs     struct {
		RequiredDegree string `json:"required_degree"`
	} `json:"education_requirements"`
	SeniorityLevel string `json:"seniority_level"`
	Summary        string `json:"summary"`
}

type analyzeJobWire struct {
	Status   string          `json:"status"`
	JobTitle string          `json:"job_title"`
	Company  string          `json:"company"`
	Analysis jobAnalysisWire `json:"analysis"`
}

type scoredCandidateWire struct {
	Filename       string                `json:"filename"`
	OverallScore   float64               `json:"overall_score"`
	Recommendation string                `json:"recommendation"`
	Breakdown      models.ScoreBreakdown `json:"score_breakdown"`
	Info           models.CandidateInfo  `json:"candidate_info"`
	KeyStrengths   []string              `json:"key_strengths"`
	AreasOfConcern []string              `json:"areas_of_concern"`
	Justification  string                `json:"justification"`
	Error          string                `json:"error"`
}

type batchScoreWire struct {
	Status       string `json:"status"`
	BatchResults struct {
		TotalResumes          int                   `json:"total_resumes"`
		ProcessedSuccessfully int                   `json:"processed_successfully"`
		Results               []scoredCandidateWire `json:"results"`
		AverageScore          float64               `json:"average_score"`
		ProcessingTimeSeconds float64               `json:"processing_time_seconds"`
	} `json:"batch_results"`
	Summary struct {
		TopScore float64 `json:"top_score"`
	} `json:"summary"`
}

type errorDetailWire struct {
	Detail string `json:"detail"`
}

// AnalyzeJob sends the free-text job description for structural analysis and
// returns the requirement structure the batch request renders from.
func (c *screeningClient) AnalyzeJob(ctx context.Context, description, title, company string) (*models.JobRequirements, error) {
	payload, err := json.Marshal(map[string]string{
		"description": description,
		"title":       title,
		"company":     company,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze-job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzeJobPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze-job request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("calling screening service", zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze-job call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Detail: readDetail(resp)}
	}

	var wire analyzeJobWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode analyze-job response: %w", err)
	}

	return &models.JobRequirements{
		Title:             wire.JobTitle,
		RequiredSkills:    wire.Analysis.RequiredSkills,
		MinimumExperience: wire.Analysis.MinimumExperience,
		RequiredEducation: wire.Analysis.EducationReqs.RequiredDegree,
		SeniorityLevel:    wire.Analysis.SeniorityLevel,
		Summary:           wire.Analysis.Summary,
	}, nil
}

// ScoreBatch submits the rendered description plus every queued document as
// one multipart request and maps the ranked response entries back. The service
// is called as one atomic unit: there is no per-file streaming or partial
// success on the wire.
func (c *screeningClient) ScoreBatch(
	ctx context.Context,
	description, jobTitle string,
	docs []*models.CandidateDocument,
) (*BatchResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("job_description", description); err != nil {
		return nil, fmt.Errorf("failed to write job description field: %w", err)
	}
	if jobTitle != "" {
		if err := w.WriteField("job_title", jobTitle); err != nil {
			return nil, fmt.Errorf("failed to write job title field: %w", err)
		}
	}

	// Attachment order is queue order; the response is mapped back by position.
	for _, doc := range docs {
		if err := attachFile(w, doc); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+batchScorePath, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build batch-score request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	c.logger.Info("submitting batch to screening service",
		zap.Int("documents", len(docs)),
		zap.String("job_title", jobTitle),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("batch-score call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Detail: readDetail(resp)}
	}

	var wire batchScoreWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode batch-score response: %w", err)
	}

	results := make([]models.ScoredCandidate, 0, len(wire.BatchResults.Results))
	for _, entry := range wire.BatchResults.Results {
		results = append(results, models.ScoredCandidate{
			Filename:       entry.Filename,
			OverallScore:   entry.OverallScore,
			Breakdown:      entry.Breakdown,
			Info:           entry.Info,
			KeyStrengths:   entry.KeyStrengths,
			AreasOfConcern: entry.AreasOfConcern,
			Justification:  entry.Justification,
			Recommendation: entry.Recommendation,
			Err:            entry.Error,
		})
	}

	// The service establishes no correlation identifier per document; entries
	// map back onto the queue positionally. A count mismatch is surfaced, not
	// papered over.
	if len(results) != len(docs) {
		c.logger.Warn("batch response count differs from submitted documents",
			zap.Int("submitted", len(docs)),
			zap.Int("returned", len(results)),
		)
	}

	return &BatchResult{
		Results:               results,
		TotalFiles:            wire.BatchResults.TotalResumes,
		SuccessfullyProcessed: wire.BatchResults.ProcessedSuccessfully,
		AverageScore:          wire.BatchResults.AverageScore,
		TopScore:              wire.Summary.TopScore,
		ProcessingTimeSeconds: wire.BatchResults.ProcessingTimeSeconds,
	}, nil
}

func attachFile(w *multipart.Writer, doc *models.CandidateDocument) error {
	f, err := os.Open(doc.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", doc.OriginalFilename, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile("files", doc.OriginalFilename)
	if err != nil {
		return fmt.Errorf("failed to create form file for %s: %w", doc.OriginalFilename, err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to attach %s: %w", doc.OriginalFilename, err)
	}
	return nil
}

// readDetail pulls the service's human-readable detail message out of a
// non-success response, falling back to the HTTP status line.
func readDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var detail errorDetailWire
		if jsonErr := json.Unmarshal(data, &detail); jsonErr == nil && detail.Detail != "" {
			return detail.Detail
		}
	}
	return fmt.Sprintf("bad status: %s", resp.Status)
}
