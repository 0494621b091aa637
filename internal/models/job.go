package models

// JobRequirements is the structured job analysis returned by the screening
// service's analyze-job call. The structure is treated as already validated;
// this subsystem only renders it back into the batch request text.
type JobRequirements struct {
	Title             string              `json:"title,omitempty"`
	RequiredSkills    map[string][]string `json:"required_skills"`
	MinimumExperience *float64            `json:"minimum_experience,omitempty"`
	RequiredEducation string              `json:"required_education,omitempty"`
	SeniorityLevel    string              `json:"seniority_level,omitempty"`
	Summary           string              `json:"summary,omitempty"`
}

// HasSkills reports whether any skill category carries at least one item.
func (j *JobRequirements) HasSkills() bool {
	for _, items := range j.RequiredSkills {
		if len(items) > 0 {
			return true
		}
	}
	return false
}
