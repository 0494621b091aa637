package services

import (
	"errors"
	"math"

	"resume-screener/internal/models"
)

// SimilarThreshold is the band inside which a delta reads as a near-tie. The
// bound is exclusive: a difference of exactly 2 points is still signed.
const SimilarThreshold = 2.0

type DeltaClass string

const (
	DeltaBaseline DeltaClass = "baseline"
	DeltaHigher   DeltaClass = "higher"
	DeltaLower    DeltaClass = "lower"
	DeltaSimilar  DeltaClass = "similar"
)

var (
	ErrComparisonNotOpen = errors.New("comparison mode is not open for this session")
	ErrNoResults         = errors.New("no batch results available for comparison")
	ErrCandidateUnscored = errors.New("candidate has no score and cannot be compared")
)

// MetricDelta is one candidate's value on one score axis relative to the
// baseline. The classification is presentation-only; exports carry raw values.
type MetricDelta struct {
	Value float64    `json:"value"`
	Delta float64    `json:"delta"`
	Class DeltaClass `json:"class"`
}

type ComparedCandidate struct {
	Candidate models.ScoredCandidate `json:"candidate"`
	Deltas    map[string]MetricDelta `json:"deltas"`
}

type ComparisonView struct {
	Baseline   models.ScoredCandidate `json:"baseline"`
	Candidates []ComparedCandidate    `json:"candidates"`
}

// ComparisonEngine manages the session's bounded selection and computes
// per-metric differences against the baseline. It only operates after a
// completed batch.
type ComparisonEngine interface {
	Open(session *models.Session) error
	Close(session *models.Session)
	Add(session *models.Session, filename string) error
	Remove(session *models.Session, filename string) error
	View(session *models.Session) (*ComparisonView, error)
}

type comparisonEngine struct{}

func NewComparisonEngine() ComparisonEngine {
	return &comparisonEngine{}
}

// Open enters comparison mode over the current results, defaulting to the top
// three ranked candidates. Callers hold the session lock.
func (e *comparisonEngine) Open(session *models.Session) error {
	if len(session.Results) == 0 {
		return ErrNoResults
	}
	if !session.Results.IsRanked() {
		return ErrUnrankedResults
	}

	selection, err := models.NewComparisonSelection(session.Results)
	if err != nil {
		return err
	}
	session.Comparison = selection
	return nil
}

func (e *comparisonEngine) Close(session *models.Session) {
	session.Comparison = nil
}

func (e *comparisonEngine) Add(session *models.Session, filename string) error {
	if session.Comparison == nil {
		return ErrComparisonNotOpen
	}

	candidate, found := session.Results.ByFilename(filename)
	if !found {
		return models.ErrNotInResults
	}
	if !candidate.Scored() {
		return ErrCandidateUnscored
	}
	return session.Comparison.Add(*candidate)
}

func (e *comparisonEngine) Remove(session *models.Session, filename string) error {
	if session.Comparison == nil {
		return ErrComparisonNotOpen
	}
	return session.Comparison.Remove(filename)
}

// View assembles the interactive delta display: every selected candidate's
// value and signed difference against the baseline on every score axis.
func (e *comparisonEngine) View(session *models.Session) (*ComparisonView, error) {
	if session.Comparison == nil {
		return nil, ErrComparisonNotOpen
	}

	baseline := session.Comparison.Baseline()
	selected := session.Comparison.Candidates()

	view := &ComparisonView{
		Baseline:   baseline,
		Candidates: make([]ComparedCandidate, 0, len(selected)),
	}

	axes := append([]string{models.MetricOverall}, models.BreakdownMetrics...)

	for i, candidate := range selected {
		deltas := make(map[string]MetricDelta, len(axes))
		for _, axis := range axes {
			value, _ := candidate.Metric(axis)
			if i == 0 {
				deltas[axis] = MetricDelta{Value: value, Class: DeltaBaseline}
				continue
			}
			deltas[axis] = Delta(candidate, baseline, axis)
		}
		view.Candidates = append(view.Candidates, ComparedCandidate{
			Candidate: candidate,
			Deltas:    deltas,
		})
	}

	return view, nil
}

// Delta computes one candidate's signed difference against the baseline on a
// score axis. Differences strictly inside the similar threshold classify as
// near-ties instead of signed movements.
func Delta(candidate, baseline models.ScoredCandidate, axis string) MetricDelta {
	value, _ := candidate.Metric(axis)
	base, _ := baseline.Metric(axis)
	diff := value - base

	var class DeltaClass
	switch {
	case math.Abs(diff) < SimilarThreshold:
		class = DeltaSimilar
	case diff > 0:
		class = DeltaHigher
	default:
		class = DeltaLower
	}

	return MetricDelta{Value: value, Delta: diff, Class: class}
}
