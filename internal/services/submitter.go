package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resume-screener/internal/metrics"
	"resume-screener/internal/models"
)

// MaxBatchSize caps one submission; the screening service refuses larger
// batches anyway, so the queue is checked before anything leaves the process.
const MaxBatchSize = 20

var (
	ErrEmptyQueue    = errors.New("no documents queued: add at least one resume before processing")
	ErrBatchInFlight = errors.New("a batch is already being processed for this session")
	ErrBatchTooLarge = fmt.Errorf("too many documents: maximum %d resumes per batch", MaxBatchSize)
)

// BatchSubmitter turns the session's queue plus job-requirement data into
// exactly one outbound batch request and folds the response back into the
// session as the canonical result list.
type BatchSubmitter interface {
	ProcessBatch(ctx context.Context, session *models.Session) error
}

type batchSubmitter struct {
	client     ScreeningClient
	builder    *DescriptionBuilder
	aggregator ResultAggregator
	logger     *zap.Logger
}

func NewBatchSubmitter(
	client ScreeningClient,
	aggregator ResultAggregator,
	logger *zap.Logger,
) BatchSubmitter {
	return &batchSubmitter{
		client:     client,
		builder:    NewDescriptionBuilder(),
		aggregator: aggregator,
		logger:     logger,
	}
}

// ProcessBatch runs one submission end to end. Every queued document is
// flipped to processing in one step before dispatch; the single network call
// is the only suspension point; on resolution every document lands in
// completed or error together. The caller owns the session's in-flight flag.
func (s *batchSubmitter) ProcessBatch(ctx context.Context, session *models.Session) error {
	session.Lock()

	docs := session.Queue.Documents()
	if len(docs) == 0 {
		session.EndProcessing()
		session.Unlock()
		return ErrEmptyQueue
	}

	session.LastError = ""
	session.Results = nil
	session.Summary = nil
	session.Comparison = nil
	session.Queue.SetAllStatus(models.StatusProcessing)

	description := s.builder.Render(session.Requirements, session.JobTitle)
	jobTitle := session.JobTitle
	session.Unlock()

	s.logger.Info("batch dispatch",
		zap.String("session", session.ID.String()),
		zap.Int("documents", len(docs)),
	)

	metrics.BatchesSubmitted.Inc()
	started := time.Now()

	result, err := s.client.ScoreBatch(ctx, description, jobTitle, docs)

	session.Lock()
	defer session.Unlock()
	defer session.EndProcessing()

	if err != nil {
		session.Queue.SetAllStatus(models.StatusError)
		session.LastError = failureNotification(err)
		metrics.BatchFailures.Inc()

		s.logger.Error("batch failed",
			zap.String("session", session.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("batch submission failed: %w", err)
	}

	ranked := models.NewRankedResults(result.Results)
	summary, aggErr := s.aggregator.Summarize(ranked, result.ProcessingTimeSeconds)
	if aggErr != nil {
		// Cannot happen for a freshly ranked list; treated as a service fault
		// if it ever does.
		session.Queue.SetAllStatus(models.StatusError)
		session.LastError = GenericFailureMessage
		metrics.BatchFailures.Inc()
		return fmt.Errorf("batch aggregation failed: %w", aggErr)
	}

	session.Results = ranked
	session.Summary = summary
	session.Queue.SetAllStatus(models.StatusCompleted)

	metrics.BatchDuration.Observe(time.Since(started).Seconds())

	s.logger.Info("batch completed",
		zap.String("session", session.ID.String()),
		zap.Int("scored", summary.SuccessfullyProcessed),
		zap.Int("total", summary.Total),
		zap.Float64("average_score", summary.AverageScore),
	)
	return nil
}

// failureNotification picks the one workflow-level message the user sees: the
// service's detail when it sent one, a generic fallback for transport and
// timeout failures.
func failureNotification(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Detail != "" {
		return svcErr.Detail
	}
	return GenericFailureMessage
}
