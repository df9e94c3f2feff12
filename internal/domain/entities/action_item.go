package entities

import (
	"time"

	"github.com/google/uuid"
)

// Provenance distinguishes user-entered records from model-extracted ones
type Provenance string

const (
	ProvenanceManual Provenance = "manual"
	ProvenanceAI     Provenance = "ai"
)

// Action item priority values
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
)

// Action item status values
const (
	ActionItemStatusOpen       = "open"
	ActionItemStatusInProgress = "in_progress"
	ActionItemStatusDone       = "done"
)

// ActionItem represents a task captured manually or extracted from a transcript
type ActionItem struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID    uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	TranscriptID *uuid.UUID `json:"transcript_id,omitempty" gorm:"type:uuid;index"`
	ReportID     *uuid.UUID `json:"report_id,omitempty" gorm:"type:uuid;index"`
	Title        string     `json:"title" gorm:"type:varchar(500);not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	Priority     string     `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:'open'"`
	Assignee     string     `json:"assignee,omitempty" gorm:"type:varchar(255)"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Provenance   Provenance `json:"provenance" gorm:"type:varchar(10);default:'manual'"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a manually entered action item
func NewActionItem(projectID uuid.UUID, title string) *ActionItem {
	return &ActionItem{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Title:      title,
		Priority:   ActionItemPriorityMedium,
		Status:     ActionItemStatusOpen,
		Provenance: ProvenanceManual,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// NewExtractedActionItem creates an AI-extracted action item linked to its source transcript.
// Extracted items always start open with no due date.
func NewExtractedActionItem(projectID, transcriptID uuid.UUID, title string) *ActionItem {
	item := NewActionItem(projectID, title)
	item.TranscriptID = &transcriptID
	item.Provenance = ProvenanceAI
	return item
}
