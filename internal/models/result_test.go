package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRankedResultsOrdersByScore(t *testing.T) {
	ranked := NewRankedResults([]ScoredCandidate{
		{Filename: "mid.pdf", OverallScore: 70},
		{Filename: "top.pdf", OverallScore: 95},
		{Filename: "low.pdf", OverallScore: 40},
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "top.pdf", ranked[0].Filename)
	assert.Equal(t, "mid.pdf", ranked[1].Filename)
	assert.Equal(t, "low.pdf", ranked[2].Filename)

	for i, c := range ranked {
		assert.Equal(t, i+1, c.Rank)
	}
	assert.True(t, ranked.IsRanked())
}

func TestNewRankedResultsFailedEntriesLast(t *testing.T) {
	ranked := NewRankedResults([]ScoredCandidate{
		{Filename: "broken.pdf", Err: "could not extract text"},
		{Filename: "ok.pdf", OverallScore: 50},
	})

	assert.Equal(t, "ok.pdf", ranked[0].Filename)
	assert.Equal(t, "broken.pdf", ranked[1].Filename)
	assert.True(t, ranked.IsRanked())
}

func TestNewRankedResultsStableOnTies(t *testing.T) {
	ranked := NewRankedResults([]ScoredCandidate{
		{Filename: "first.pdf", OverallScore: 80},
		{Filename: "second.pdf", OverallScore: 80},
	})

	assert.Equal(t, "first.pdf", ranked[0].Filename)
	assert.Equal(t, "second.pdf", ranked[1].Filename)
}

func TestIsRankedDetectsViolations(t *testing.T) {
	outOfOrder := RankedResults{
		{Filename: "low.pdf", Rank: 1, OverallScore: 10},
		{Filename: "high.pdf", Rank: 2, OverallScore: 90},
	}
	assert.False(t, outOfOrder.IsRanked())

	badRanks := RankedResults{
		{Filename: "a.pdf", Rank: 2, OverallScore: 90},
		{Filename: "b.pdf", Rank: 3, OverallScore: 80},
	}
	assert.False(t, badRanks.IsRanked())

	failedBeforeScored := RankedResults{
		{Filename: "broken.pdf", Rank: 1, Err: "failed"},
		{Filename: "ok.pdf", Rank: 2, OverallScore: 50},
	}
	assert.False(t, failedBeforeScored.IsRanked())

	assert.True(t, RankedResults{}.IsRanked())
}

func TestMetricAxes(t *testing.T) {
	c := ScoredCandidate{
		OverallScore: 90,
		Breakdown: ScoreBreakdown{
			RequiredSkills:           80,
			ExperienceLevel:          70,
			Education:                60,
			AdditionalQualifications: 50,
		},
	}

	expected := map[string]float64{
		MetricOverall:                  90,
		MetricRequiredSkills:           80,
		MetricExperienceLevel:          70,
		MetricEducation:                60,
		MetricAdditionalQualifications: 50,
	}
	for axis, want := range expected {
		got, ok := c.Metric(axis)
		require.True(t, ok, axis)
		assert.Equal(t, want, got, axis)
	}

	_, ok := c.Metric("made_up_axis")
	assert.False(t, ok)

	failed := ScoredCandidate{Err: "failed", OverallScore: 99}
	_, ok = failed.Metric(MetricOverall)
	assert.False(t, ok, "unscored entries expose no metric values")
}

func TestByFilename(t *testing.T) {
	ranked := NewRankedResults([]ScoredCandidate{
		{Filename: "a.pdf", OverallScore: 80},
		{Filename: "b.pdf", OverallScore: 60},
	})

	found, ok := ranked.ByFilename("b.pdf")
	require.True(t, ok)
	assert.Equal(t, "b.pdf", found.Filename)

	_, ok = ranked.ByFilename("missing.pdf")
	assert.False(t, ok)
}
