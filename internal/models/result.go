package models

import "sort"

// Score axes shared by the comparison engine and the export table. "overall"
// is the service-weighted aggregate; the breakdown axes are independent and are
// not required to average to it.
const (
	MetricOverall                  = "overall_score"
	MetricRequiredSkills           = "required_skills"
	MetricExperienceLevel          = "experience_level"
	MetricEducation                = "education"
	MetricAdditionalQualifications = "additional_qualifications"
)

// BreakdownMetrics lists the sub-score axes in display order.
var BreakdownMetrics = []string{
	MetricRequiredSkills,
	MetricExperienceLevel,
	MetricEducation,
	MetricAdditionalQualifications,
}

type ScoreBreakdown struct {
	RequiredSkills           float64 `json:"required_skills"`
	ExperienceLevel          float64 `json:"experience_level"`
	Education                float64 `json:"education"`
	AdditionalQualifications float64 `json:"additional_qualifications"`
}

type CandidateInfo struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	YearsExperience *float64 `json:"years_experience,omitempty"`
	EducationLevel  string   `json:"education_level,omitempty"`
}

// ScoredCandidate is the canonical, read-only result for one submitted document.
// Entries with a non-empty Err represent documents the service could not extract;
// they carry no defined score and are excluded from scoring statistics but stay
// in the display list.
type ScoredCandidate struct {
	Filename       string         `json:"filename"`
	Rank           int            `json:"rank"`
	OverallScore   float64        `json:"overall_score"`
	Breakdown      ScoreBreakdown `json:"score_breakdown"`
	Info           CandidateInfo  `json:"candidate_info"`
	KeyStrengths   []string       `json:"key_strengths,omitempty"`
	AreasOfConcern []string       `json:"areas_of_concern,omitempty"`
	Justification  string         `json:"justification,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	Err            string         `json:"error,omitempty"`
}

// Scored reports whether the entry carries a defined overall score.
func (c *ScoredCandidate) Scored() bool {
	return c.Err == ""
}

// Metric returns the value for a score axis. The bool is false for an unknown
// axis or an unscored entry.
func (c *ScoredCandidate) Metric(axis string) (float64, bool) {
	if !c.Scored() {
		return 0, false
	}
	switch axis {
	case MetricOverall:
		return c.OverallScore, true
	case MetricRequiredSkills:
		return c.Breakdown.RequiredSkills, true
	case MetricExperienceLevel:
		return c.Breakdown.ExperienceLevel, true
	case MetricEducation:
		return c.Breakdown.Education, true
	case MetricAdditionalQualifications:
		return c.Breakdown.AdditionalQualifications, true
	}
	return 0, false
}

// RankedResults is the canonical result list for one batch: non-increasing
// overall score, rank = position + 1, failed extractions at the tail.
type RankedResults []ScoredCandidate

// NewRankedResults orders the mapped response entries and assigns ranks. The
// service is trusted to rank its own output, but the ordering is re-established
// here rather than assumed (positional trust is already a known fragility).
func NewRankedResults(results []ScoredCandidate) RankedResults {
	ranked := make(RankedResults, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Scored() != ranked[j].Scored() {
			return ranked[i].Scored()
		}
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// IsRanked verifies the canonical ordering invariant. The aggregator and the
// comparison engine assert this instead of assuming it.
func (r RankedResults) IsRanked() bool {
	for i := 1; i < len(r); i++ {
		if !r[i-1].Scored() && r[i].Scored() {
			return false
		}
		if r[i-1].Scored() && r[i].Scored() && r[i-1].OverallScore < r[i].OverallScore {
			return false
		}
		if r[i].Rank != i+1 {
			return false
		}
	}
	if len(r) > 0 && r[0].Rank != 1 {
		return false
	}
	return true
}

// ByFilename finds a candidate in the list. Identity is by source filename.
func (r RankedResults) ByFilename(name string) (*ScoredCandidate, bool) {
	for i := range r {
		if r[i].Filename == name {
			return &r[i], true
		}
	}
	return nil, false
}
