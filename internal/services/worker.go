package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"resume-screener/internal/models"
)

// BatchWorker runs batch submissions off the request path. The handler flips
// the session's in-flight flag, enqueues, and returns immediately; clients
// poll the results endpoint. Concurrency applies across sessions only; one
// session never has two outstanding batches.
type BatchWorker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueBatch(session *models.Session)
}

type batchWorker struct {
	submitter   BatchSubmitter
	jobQueue    chan *models.Session
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	logger      *zap.Logger
}

func NewBatchWorker(submitter BatchSubmitter, concurrency int, queueDepth int, logger *zap.Logger) BatchWorker {
	return &batchWorker{
		submitter:   submitter,
		jobQueue:    make(chan *models.Session, queueDepth),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		logger:      logger,
	}
}

func (w *batchWorker) Start(ctx context.Context) {
	w.logger.Info("starting batch worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

func (w *batchWorker) Stop() {
	w.logger.Info("stopping batch worker")
	close(w.stopChan)
	w.wg.Wait()
}

// EnqueueBatch hands a session to the worker pool. The caller has already
// claimed the session's in-flight flag.
func (w *batchWorker) EnqueueBatch(session *models.Session) {
	select {
	case w.jobQueue <- session:
		w.logger.Debug("batch enqueued", zap.String("session", session.ID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, releasing batch", zap.String("session", session.ID.String()))
		session.Lock()
		session.Queue.SetAllStatus(models.StatusError)
		session.LastError = GenericFailureMessage
		session.EndProcessing()
		session.Unlock()
	}
}

func (w *batchWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("batch worker stopped", zap.Int("worker", workerID))
			return
		case session := <-w.jobQueue:
			if err := w.submitter.ProcessBatch(ctx, session); err != nil {
				w.logger.Error("batch processing failed",
					zap.Int("worker", workerID),
					zap.String("session", session.ID.String()),
					zap.Error(err),
				)
			}
		}
	}
}
