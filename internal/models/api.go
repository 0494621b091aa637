package models

type SessionResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type AnalyzeJobRequest struct {
	Description string `json:"description"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
}

type AddDocumentsResponse struct {
	Accepted []*CandidateDocument `json:"accepted"`
	Rejected []RejectedFile       `json:"rejected"`
	Queue    []*CandidateDocument `json:"queue"`
}

type ProcessResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultsResponse struct {
	Processing   bool                 `json:"processing"`
	Documents    []*CandidateDocument `json:"documents"`
	Results      RankedResults        `json:"results,omitempty"`
	Summary      *BatchSummary        `json:"summary,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
}

type ComparisonAddRequest struct {
	Filename string `json:"filename"`
}
