package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_documents_accepted_total",
		Help: "Documents that passed the add-time constraints and entered a queue",
	})

	DocumentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_documents_rejected_total",
		Help: "Documents refused at add time",
	}, []string{"reason"})

	BatchesSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_batches_submitted_total",
		Help: "Batch submissions dispatched to the screening service",
	})

	BatchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "resume_batch_failures_total",
		Help: "Batch submissions that resolved in failure",
	})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resume_batch_duration_seconds",
		Help:    "Wall time of one batch submission round trip",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	ExportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resume_exports_generated_total",
		Help: "CSV exports produced",
	}, []string{"scope"})
)
