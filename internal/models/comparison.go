package models

import "errors"

const (
	// SelectionMin and SelectionMax bound the comparison set. Operations that
	// would leave the bounds are refused, not clamped.
	SelectionMin = 2
	SelectionMax = 4

	// DefaultSelectionSize is how many top-ranked candidates comparison mode
	// starts with when enough exist.
	DefaultSelectionSize = 3
)

var (
	ErrNotEnoughCandidates = errors.New("comparison requires at least 2 scored candidates")
	ErrSelectionFull       = errors.New("comparison selection already holds the maximum of 4 candidates")
	ErrAlreadySelected     = errors.New("candidate is already in the comparison selection")
	ErrSelectionAtMinimum  = errors.New("comparison selection cannot drop below 2 candidates")
	ErrNotInSelection      = errors.New("candidate is not in the comparison selection")
	ErrNotInResults        = errors.New("candidate is not in the result list")
)

// ComparisonSelection is an ordered subset of the canonical result list, size
// between 2 and 4. The first member is the baseline every delta is computed
// against. Identity is by source filename.
type ComparisonSelection struct {
	candidates []ScoredCandidate
}

// NewComparisonSelection opens comparison mode over a ranked list, defaulting
// to the top three (or top two when only two exist).
func NewComparisonSelection(ranked RankedResults) (*ComparisonSelection, error) {
	scored := make([]ScoredCandidate, 0, DefaultSelectionSize)
	for _, c := range ranked {
		if !c.Scored() {
			continue
		}
		scored = append(scored, c)
		if len(scored) == DefaultSelectionSize {
			break
		}
	}
	if len(scored) < SelectionMin {
		return nil, ErrNotEnoughCandidates
	}
	return &ComparisonSelection{candidates: scored}, nil
}

// Baseline is the selection's first member.
func (s *ComparisonSelection) Baseline() ScoredCandidate {
	return s.candidates[0]
}

// Candidates returns the selection in order, baseline first.
func (s *ComparisonSelection) Candidates() []ScoredCandidate {
	out := make([]ScoredCandidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

func (s *ComparisonSelection) Len() int {
	return len(s.candidates)
}

func (s *ComparisonSelection) Contains(filename string) bool {
	for _, c := range s.candidates {
		if c.Filename == filename {
			return true
		}
	}
	return false
}

// Add appends a candidate. Refused when the selection is full or the candidate
// is already present.
func (s *ComparisonSelection) Add(candidate ScoredCandidate) error {
	if len(s.candidates) >= SelectionMax {
		return ErrSelectionFull
	}
	if s.Contains(candidate.Filename) {
		return ErrAlreadySelected
	}
	s.candidates = append(s.candidates, candidate)
	return nil
}

// Remove drops a candidate by filename. Refused when the selection is at the
// floor; removing the baseline promotes the next member.
func (s *ComparisonSelection) Remove(filename string) error {
	if len(s.candidates) <= SelectionMin {
		return ErrSelectionAtMinimum
	}
	for i, c := range s.candidates {
		if c.Filename == filename {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			return nil
		}
	}
	return ErrNotInSelection
}
