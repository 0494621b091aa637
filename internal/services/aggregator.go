package services

import (
	"errors"

	"resume-screener/internal/models"
)

var ErrUnrankedResults = errors.New("result list violates the descending-score ordering")

// ResultAggregator derives the batch summary from the canonical result list.
// It is pure: recomputed on every call, never cached, never mutating its input.
type ResultAggregator interface {
	Summarize(results models.RankedResults, processingTimeSeconds float64) (*models.BatchSummary, error)
}

type resultAggregator struct{}

func NewResultAggregator() ResultAggregator {
	return &resultAggregator{}
}

// Summarize asserts the ranked ordering and computes counts, category
// distribution and the mean score. Entries without a defined score count
// toward the total but are excluded from every scoring statistic; a mean over
// zero scored entries is 0, not an error.
func (a *resultAggregator) Summarize(results models.RankedResults, processingTimeSeconds float64) (*models.BatchSummary, error) {
	if !results.IsRanked() {
		return nil, ErrUnrankedResults
	}

	distribution := make(map[string]int, len(Categories))
	for _, c := range Categories {
		distribution[string(c)] = 0
	}

	scored := 0
	sum := 0.0
	top := 0.0
	for _, candidate := range results {
		if !candidate.Scored() {
			continue
		}
		scored++
		sum += candidate.OverallScore
		if candidate.OverallScore > top {
			top = candidate.OverallScore
		}
		distribution[string(Categorize(candidate.OverallScore))]++
	}

	average := 0.0
	if scored > 0 {
		average = sum / float64(scored)
	}

	return &models.BatchSummary{
		Total:                 len(results),
		SuccessfullyProcessed: scored,
		AverageScore:          average,
		TopScore:              top,
		Distribution:          distribution,
		ProcessingTimeSeconds: processingTimeSeconds,
	}, nil
}
