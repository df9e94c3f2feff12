package pipeline

import (
	"fmt"
	"strings"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// Output token budgets per stage. Cleanup is large because the cleaned
// rewrite can be as long as the input; the rest are bounded documents.
const (
	cleanupMaxTokens    = 32000
	rollupMaxTokens     = 4000
	extractionMaxTokens = 4000
	reportMaxTokens     = 8000
)

// The four required section headers of the project status document.
var rollupSections = []string{
	"## Current Status",
	"## Key Points",
	"## Recent Developments",
	"## Open Risks",
}

const cleanupSystemPrompt = `You clean up raw meeting transcripts. Correct grammar and punctuation, remove filler words and false starts, and preserve every factual statement, name, number and commitment. Do not summarize away content in the cleaned text.

Respond with a single JSON object:
{"cleaned_text": "<the full cleaned transcript>", "summary": "<3-6 sentence summary of the meeting>"}`

const rollupComposeSystemPrompt = `You maintain a running status document for a project. This is the first status update, so compose a fresh document from the meeting summary you are given.

The document must be markdown with exactly these four sections:
## Current Status
## Key Points
## Recent Developments
## Open Risks

Respond with a single JSON object:
{"status_summary": "<the full markdown document>"}`

const rollupMergeSystemPrompt = `You maintain a running status document for a project. Merge the new meeting summary into the previous status document: update sections that changed, add genuinely new developments, and remove claims the new summary contradicts or makes stale. Keep the document concise.

The document must be markdown with exactly these four sections:
## Current Status
## Key Points
## Recent Developments
## Open Risks

Respond with a single JSON object:
{"status_summary": "<the full markdown document>"}`

const actionItemSystemPrompt = `You extract action items from meeting transcripts: concrete forward-looking tasks someone committed to or was asked to do. Infer priority (low, medium, high) from urgency and importance language. Set assignee only when a person's name is explicitly tied to the commitment, otherwise use an empty string. If there are no actionable items, return an empty list.

Respond with a single JSON object:
{"action_items": [{"title": "...", "description": "...", "priority": "low|medium|high", "assignee": ""}]}`

const decisionSystemPrompt = `You extract decisions from meeting transcripts: agreements, conclusions and choices that were made, not tasks to do later. Capture stated rationale in the context field. Set made_by only when the transcript names who made the decision, otherwise use an empty string. If no decisions were made, return an empty list.

Respond with a single JSON object:
{"decisions": [{"title": "...", "description": "...", "context": "...", "made_by": ""}]}`

const reportSystemPrompt = `You write structured reports from meeting transcripts. The report is full markdown with a summary, key points and decisions, an action items section (only when action items are provided), and next steps.

Respond with a single JSON object:
{"title": "<report title>", "content": "<the full markdown report>"}`

// reportFraming returns descriptive framing text per report type. The type
// changes the tone of the instruction, not the output schema.
func reportFraming(t entities.ReportType) string {
	switch t {
	case entities.ReportTypeWeekly:
		return "Write this as a weekly progress report for stakeholders."
	case entities.ReportTypeSummary:
		return "Write this as a concise executive summary."
	default:
		return "Write this as meeting minutes for attendees and absentees."
	}
}

func buildCleanupPrompt(rawText, projectName, meetingType string) string {
	var sb strings.Builder
	if projectName != "" {
		fmt.Fprintf(&sb, "Project: %s\n", projectName)
	}
	if meetingType != "" {
		fmt.Fprintf(&sb, "Meeting type: %s\n", meetingType)
	}
	sb.WriteString("Raw transcript:\n\n")
	sb.WriteString(rawText)
	return sb.String()
}

func buildRollupPrompt(previousRollup, newSummary, projectName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n\n", projectName)
	if previousRollup != "" {
		sb.WriteString("Previous status document:\n\n")
		sb.WriteString(previousRollup)
		sb.WriteString("\n\n")
	}
	sb.WriteString("New meeting summary:\n\n")
	sb.WriteString(newSummary)
	return sb.String()
}

func buildExtractionPrompt(text, projectName string) string {
	var sb strings.Builder
	if projectName != "" {
		fmt.Fprintf(&sb, "Project: %s\n\n", projectName)
	}
	sb.WriteString("Transcript:\n\n")
	sb.WriteString(text)
	return sb.String()
}

func buildReportPrompt(transcript *entities.Transcript, items []entities.ActionItem, reportType entities.ReportType) string {
	var sb strings.Builder
	sb.WriteString(reportFraming(reportType))
	sb.WriteString("\n\n")
	if transcript.Title != "" {
		fmt.Fprintf(&sb, "Meeting: %s\n", transcript.Title)
	}
	if transcript.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", transcript.Summary)
	}
	sb.WriteString("\nTranscript:\n\n")
	sb.WriteString(transcript.Text())
	if len(items) > 0 {
		sb.WriteString("\n\nKnown action items:\n")
		for _, item := range items {
			fmt.Fprintf(&sb, "- %s", item.Title)
			if item.Assignee != "" {
				fmt.Fprintf(&sb, " (%s)", item.Assignee)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
