package services

import (
	"regexp"
	"strings"
)

// JustificationSections is the free-text justification split into the four
// sections the detail view renders. When the text carries no recognizable
// structure, the whole of it lands in Summary and the named sections stay
// empty.
type JustificationSections struct {
	TechnicalCompetency string `json:"technical_competency,omitempty"`
	ExperienceQuality   string `json:"experience_quality,omitempty"`
	RoleAlignment       string `json:"role_alignment,omitempty"`
	OverallAssessment   string `json:"overall_assessment,omitempty"`
	Summary             string `json:"summary,omitempty"`
}

// labelPattern matches a section label at a plausible boundary: optional
// markdown emphasis, optional trailing colon.
var labelPattern = regexp.MustCompile(
	`(?i)\*{0,2}(Technical Competency|Experience Quality|Role Alignment|Overall Assessment)\*{0,2}\s*:?`,
)

// ParseJustification is a best-effort segmentation of the scoring rationale.
// Non-matching text is the normal case, not an error: the routine never fails,
// it degrades to an unlabeled summary.
func ParseJustification(text string) JustificationSections {
	text = strings.TrimSpace(text)
	if text == "" {
		return JustificationSections{}
	}

	matches := labelPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return JustificationSections{Summary: text}
	}

	sections := JustificationSections{}
	for i, m := range matches {
		label := strings.ToLower(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])

		switch label {
		case "technical competency":
			sections.TechnicalCompetency = body
		case "experience quality":
			sections.ExperienceQuality = body
		case "role alignment":
			sections.RoleAlignment = body
		case "overall assessment":
			sections.OverallAssessment = body
		}
	}

	// Text ahead of the first recognized label still belongs to the summary.
	if lead := strings.TrimSpace(text[:matches[0][0]]); lead != "" {
		sections.Summary = lead
	}

	return sections
}
