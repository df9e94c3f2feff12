package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

func TestBuildCleanupPrompt_OptionalContext(t *testing.T) {
	withAll := buildCleanupPrompt("raw words", "Atlas", "standup")
	assert.Contains(t, withAll, "Project: Atlas")
	assert.Contains(t, withAll, "Meeting type: standup")
	assert.Contains(t, withAll, "raw words")

	bare := buildCleanupPrompt("raw words", "", "")
	assert.NotContains(t, bare, "Project:")
	assert.NotContains(t, bare, "Meeting type:")
	assert.Contains(t, bare, "raw words")
}

func TestBuildRollupPrompt_OmitsEmptyPrevious(t *testing.T) {
	fresh := buildRollupPrompt("", "new summary", "Atlas")
	assert.NotContains(t, fresh, "Previous status document")
	assert.Contains(t, fresh, "new summary")

	merge := buildRollupPrompt("old doc", "new summary", "Atlas")
	assert.Contains(t, merge, "Previous status document")
	assert.Contains(t, merge, "old doc")
	assert.Contains(t, merge, "new summary")
}

func TestBuildReportPrompt_FramingPerType(t *testing.T) {
	tr := entities.NewTranscript("Weekly sync", nil)
	tr.RawText = "details"

	meeting := buildReportPrompt(tr, nil, entities.ReportTypeMeeting)
	weekly := buildReportPrompt(tr, nil, entities.ReportTypeWeekly)
	summary := buildReportPrompt(tr, nil, entities.ReportTypeSummary)

	assert.Contains(t, meeting, "meeting minutes")
	assert.Contains(t, weekly, "weekly progress report")
	assert.Contains(t, summary, "executive summary")
	assert.NotEqual(t, meeting, weekly)
}

func TestBuildReportPrompt_ActionItemsSection(t *testing.T) {
	tr := entities.NewTranscript("Sync", nil)
	tr.RawText = "details"

	without := buildReportPrompt(tr, nil, entities.ReportTypeMeeting)
	assert.NotContains(t, without, "Known action items")

	items := []entities.ActionItem{
		{Title: "Ship importer", Assignee: "Dana"},
		{Title: "Update runbook"},
	}
	with := buildReportPrompt(tr, items, entities.ReportTypeMeeting)
	assert.Contains(t, with, "Known action items")
	assert.Contains(t, with, "- Ship importer (Dana)")
	assert.Contains(t, with, "- Update runbook")
}

func TestRollupPromptsRequireAllSections(t *testing.T) {
	for _, section := range rollupSections {
		assert.Contains(t, rollupComposeSystemPrompt, section)
		assert.Contains(t, rollupMergeSystemPrompt, section)
	}
}

func TestStagePromptsDemandJSONObject(t *testing.T) {
	prompts := []string{
		cleanupSystemPrompt,
		rollupComposeSystemPrompt,
		rollupMergeSystemPrompt,
		actionItemSystemPrompt,
		decisionSystemPrompt,
		reportSystemPrompt,
	}
	for _, p := range prompts {
		assert.Contains(t, p, "single JSON object")
	}
}
