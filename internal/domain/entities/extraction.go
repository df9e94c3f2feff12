package entities

// Structured output shapes returned by the LLM stages. Field names match
// the JSON schema the prompts instruct the model to produce.

// CleanupResult is the output of the transcript cleanup stage
type CleanupResult struct {
	CleanedText string `json:"cleaned_text"`
	Summary     string `json:"summary"`
}

// RollupResult is the output of the project status rollup stage
type RollupResult struct {
	StatusSummary string `json:"status_summary"`
}

// ExtractedActionItem is a single task pulled out of transcript text
type ExtractedActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // low, medium, high
	Assignee    string `json:"assignee"` // empty when nobody was named
}

// ActionItemExtraction wraps the list shape the model returns
type ActionItemExtraction struct {
	ActionItems []ExtractedActionItem `json:"action_items"`
}

// ExtractedDecision is a single decision pulled out of transcript text
type ExtractedDecision struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Context     string `json:"context"` // stated rationale, if any
	MadeBy      string `json:"made_by"` // empty when nobody was named
}

// DecisionExtraction wraps the list shape the model returns
type DecisionExtraction struct {
	Decisions []ExtractedDecision `json:"decisions"`
}

// ReportResult is the output of the report generation stage
type ReportResult struct {
	Title   string `json:"title"`
	Content string `json:"content"` // full markdown
}
