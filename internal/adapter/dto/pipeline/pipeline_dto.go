package pipeline

// ProcessRequest selects the optional stages of a pipeline run.
// project_id relinks the transcript to a project before processing.
type ProcessRequest struct {
	ProjectID          string `json:"project_id,omitempty" validate:"omitempty,uuid"`
	ExtractActionItems bool   `json:"extract_action_items"`
	ExtractDecisions   bool   `json:"extract_decisions"`
	GenerateReport     bool   `json:"generate_report"`
	ReportType         string `json:"report_type,omitempty" validate:"omitempty,oneof=meeting weekly summary"`
}

// ProcessResponse acknowledges an accepted pipeline run
type ProcessResponse struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
}

// StatusResponse is the poll answer for a transcript's processing state
type StatusResponse struct {
	TranscriptID string `json:"transcript_id"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}
