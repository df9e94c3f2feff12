package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReportType selects the framing of a generated report
type ReportType string

const (
	ReportTypeMeeting ReportType = "meeting"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeSummary ReportType = "summary"
)

// Report status values
const (
	ReportStatusDraft = "draft"
	ReportStatusFinal = "final"
)

// Report is a generated markdown document for a project
type Report struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID    uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	TranscriptID *uuid.UUID `json:"transcript_id,omitempty" gorm:"type:uuid;index"`
	Title        string     `json:"title" gorm:"type:varchar(500);not null"`
	Content      string     `json:"content" gorm:"type:text"`
	Type         ReportType `json:"type" gorm:"type:varchar(20);default:'meeting'"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Provenance   Provenance `json:"provenance" gorm:"type:varchar(10);default:'ai'"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Report) TableName() string {
	return "reports"
}

// NewReport creates a generated report for a project
func NewReport(projectID uuid.UUID, transcriptID *uuid.UUID, title string, reportType ReportType) *Report {
	return &Report{
		ID:           uuid.New(),
		ProjectID:    projectID,
		TranscriptID: transcriptID,
		Title:        title,
		Type:         reportType,
		Status:       ReportStatusDraft,
		Provenance:   ProvenanceAI,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// ValidReportType reports whether t is one of the supported report types
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeMeeting, ReportTypeWeekly, ReportTypeSummary:
		return true
	}
	return false
}
