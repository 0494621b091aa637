package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"resume-screener/internal/models"
)

// NotSpecified fills metric cells for which the service returned nothing.
const NotSpecified = "Not specified"

var metricRowLabels = map[string]string{
	models.MetricOverall:                  "Overall Score",
	models.MetricRequiredSkills:           "Required Skills",
	models.MetricExperienceLevel:          "Experience Level",
	models.MetricEducation:                "Education",
	models.MetricAdditionalQualifications: "Additional Qualifications",
}

// BuildComparisonTable flattens a set of candidates into the export shape: one
// row per compared metric, one column per candidate in selection order.
// Numeric cells carry raw values at one decimal, never the thresholded
// "similar" text, so the export stays machine-readable.
func BuildComparisonTable(candidates []models.ScoredCandidate) [][]string {
	header := []string{"Metric"}
	for _, c := range candidates {
		header = append(header, c.Filename)
	}

	rows := [][]string{header}

	axes := append([]string{models.MetricOverall}, models.BreakdownMetrics...)
	for _, axis := range axes {
		row := []string{metricRowLabels[axis]}
		for _, c := range candidates {
			value, ok := c.Metric(axis)
			if !ok {
				row = append(row, NotSpecified)
				continue
			}
			row = append(row, formatScore(value))
		}
		rows = append(rows, row)
	}

	yearsRow := []string{"Years of Experience"}
	educationRow := []string{"Education Level"}
	recommendationRow := []string{"Recommendation"}
	for _, c := range candidates {
		if c.Info.YearsExperience != nil {
			yearsRow = append(yearsRow, formatScore(*c.Info.YearsExperience))
		} else {
			yearsRow = append(yearsRow, NotSpecified)
		}
		educationRow = append(educationRow, orNotSpecified(c.Info.EducationLevel))
		recommendationRow = append(recommendationRow, orNotSpecified(c.Recommendation))
	}

	rows = append(rows, yearsRow, educationRow, recommendationRow)
	return rows
}

// BuildResultsTable exports the full ranked result set with the same metric
// rows as the comparison table.
func BuildResultsTable(results models.RankedResults) [][]string {
	candidates := make([]models.ScoredCandidate, len(results))
	copy(candidates, results)
	return BuildComparisonTable(candidates)
}

// WriteCSV renders a table as a delimited export.
func WriteCSV(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(table); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func orNotSpecified(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}
