package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript_TextPrefersCleaned(t *testing.T) {
	tr := NewTranscript("standup", nil)
	tr.RawText = "um so raw"

	assert.Equal(t, "um so raw", tr.Text())

	tr.CleanedText = "So, raw."
	assert.Equal(t, "So, raw.", tr.Text())

	// Whitespace-only cleaned text does not count.
	tr.CleanedText = "   "
	assert.Equal(t, "um so raw", tr.Text())
}

func TestTranscript_HasText(t *testing.T) {
	tr := NewTranscript("empty", nil)
	assert.False(t, tr.HasText())

	tr.RawText = "  \n\t "
	assert.False(t, tr.HasText())

	tr.RawText = "words"
	assert.True(t, tr.HasText())

	tr.RawText = ""
	tr.CleanedText = "cleaned only"
	assert.True(t, tr.HasText())
}

func TestNewTranscript_Defaults(t *testing.T) {
	tr := NewTranscript("kickoff", nil)

	assert.Equal(t, ProcessingStatusNotStarted, tr.ProcessingStatus)
	assert.False(t, tr.IsProcessing())
	assert.Nil(t, tr.ProjectID)
}

func TestValidReportType(t *testing.T) {
	assert.True(t, ValidReportType(ReportTypeMeeting))
	assert.True(t, ValidReportType(ReportTypeWeekly))
	assert.True(t, ValidReportType(ReportTypeSummary))
	assert.False(t, ValidReportType(ReportType("quarterly")))
	assert.False(t, ValidReportType(ReportType("")))
}
