package models

// BatchSummary is derived from the canonical result list, never stored on its
// own. Distribution keys are the score taxonomy categories and the four counts
// sum to SuccessfullyProcessed.
type BatchSummary struct {
	Total                 int            `json:"total"`
	SuccessfullyProcessed int            `json:"successfully_processed"`
	AverageScore          float64        `json:"average_score"`
	TopScore              float64        `json:"top_score"`
	Distribution          map[string]int `json:"distribution"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
}
