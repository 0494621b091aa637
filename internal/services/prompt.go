package services

import (
	"fmt"
	"sort"
	"strings"

	"resume-screener/internal/models"
)

// GenericJobDescription is sent when no structured job-requirement data exists,
// so the screening service always receives a non-empty description.
const GenericJobDescription = "general position, no specific requirements analyzed"

// TitlePlaceholder stands in for an absent job title in the rendered header.
const TitlePlaceholder = "Not specified"

type DescriptionBuilder struct{}

func NewDescriptionBuilder() *DescriptionBuilder {
	return &DescriptionBuilder{}
}

// Render turns the analyzed job requirements back into the single text block
// the batch-score call carries. Categories render in sorted order so the same
// requirements always produce the same block.
func (b *DescriptionBuilder) Render(req *models.JobRequirements, jobTitle string) string {
	if req == nil {
		return GenericJobDescription
	}

	title := jobTitle
	if title == "" {
		title = req.Title
	}
	if title == "" {
		title = TitlePlaceholder
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Position: %s\n", title))

	sections := 0

	if req.HasSkills() {
		sb.WriteString("\nREQUIRED SKILLS:\n")
		categories := make([]string, 0, len(req.RequiredSkills))
		for category := range req.RequiredSkills {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			items := req.RequiredSkills[category]
			if len(items) == 0 {
				continue
			}
			label := strings.ToUpper(strings.ReplaceAll(category, "_", " "))
			sb.WriteString(fmt.Sprintf("- %s: %s\n", label, strings.Join(items, ", ")))
		}
		sections++
	}

	if req.MinimumExperience != nil {
		sb.WriteString(fmt.Sprintf("\nMinimum experience: %g years\n", *req.MinimumExperience))
		sections++
	}

	if req.RequiredEducation != "" {
		sb.WriteString(fmt.Sprintf("\nRequired education: %s\n", req.RequiredEducation))
		sections++
	}

	if req.SeniorityLevel != "" {
		sb.WriteString(fmt.Sprintf("\nSeniority level: %s\n", req.SeniorityLevel))
		sections++
	}

	if req.Summary != "" {
		sb.WriteString(fmt.Sprintf("\nSummary: %s\n", req.Summary))
		sections++
	}

	// An entirely empty body would leave the service with nothing to match
	// against, so the generic guard goes in under the header.
	if sections == 0 {
		sb.WriteString(fmt.Sprintf("\n%s\n", GenericJobDescription))
	}

	return sb.String()
}
