package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-screener/internal/models"
)

func TestRenderWithoutRequirements(t *testing.T) {
	got := NewDescriptionBuilder().Render(nil, "Backend Engineer")
	assert.Equal(t, GenericJobDescription, got)
}

func TestRenderFullRequirements(t *testing.T) {
	years := 5.0
	req := &models.JobRequirements{
		Title: "Senior Backend Engineer",
		RequiredSkills: map[string][]string{
			"programming_languages": {"Go", "Python"},
			"databases":             {"PostgreSQL"},
			"cloud_platforms":       {},
		},
		MinimumExperience: &years,
		RequiredEducation: "Bachelor's",
		SeniorityLevel:    "senior",
		Summary:           "Strong backend generalist with cloud exposure.",
	}

	got := NewDescriptionBuilder().Render(req, "")

	assert.True(t, strings.HasPrefix(got, "Position: Senior Backend Engineer\n"))
	assert.Contains(t, got, "REQUIRED SKILLS:")
	assert.Contains(t, got, "- PROGRAMMING LANGUAGES: Go, Python")
	assert.Contains(t, got, "- DATABASES: PostgreSQL")
	assert.NotContains(t, got, "CLOUD PLATFORMS", "empty categories are skipped")
	assert.Contains(t, got, "Minimum experience: 5 years")
	assert.Contains(t, got, "Required education: Bachelor's")
	assert.Contains(t, got, "Seniority level: senior")
	assert.Contains(t, got, "Summary: Strong backend generalist")
	assert.NotContains(t, got, GenericJobDescription)
}

func TestRenderCategoriesAreDeterministic(t *testing.T) {
	req := &models.JobRequirements{
		RequiredSkills: map[string][]string{
			"web_frameworks":        {"Fiber"},
			"databases":             {"PostgreSQL"},
			"programming_languages": {"Go"},
		},
	}

	b := NewDescriptionBuilder()
	first := b.Render(req, "Engineer")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, b.Render(req, "Engineer"))
	}

	// Sorted category order.
	assert.Less(t,
		strings.Index(first, "DATABASES"),
		strings.Index(first, "PROGRAMMING LANGUAGES"),
	)
}

func TestRenderEmptyRequirementsGetsGenericGuard(t *testing.T) {
	// Analyzed, but nothing usable came back: empty skills object, no summary.
	req := &models.JobRequirements{
		RequiredSkills: map[string][]string{},
	}

	got := NewDescriptionBuilder().Render(req, "Data Analyst")

	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Equal(t, "Position: Data Analyst", lines[0])
	assert.Contains(t, got, GenericJobDescription)
	assert.NotContains(t, got, "REQUIRED SKILLS")
}

func TestRenderTitleFallsBackToPlaceholder(t *testing.T) {
	req := &models.JobRequirements{
		RequiredSkills: map[string][]string{"databases": {"Redis"}},
	}

	got := NewDescriptionBuilder().Render(req, "")
	assert.True(t, strings.HasPrefix(got, "Position: "+TitlePlaceholder))
}
