package entities

import (
	"time"

	"github.com/google/uuid"
)

// Decision status values
const (
	DecisionStatusActive     = "active"
	DecisionStatusSuperseded = "superseded"
	DecisionStatusRevoked    = "revoked"
)

// Decision represents a recorded decision, agreement or conclusion
type Decision struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID    uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	TranscriptID *uuid.UUID `json:"transcript_id,omitempty" gorm:"type:uuid;index"`
	Title        string     `json:"title" gorm:"type:varchar(500);not null"`
	Description  string     `json:"description,omitempty" gorm:"type:text"`
	Context      string     `json:"context,omitempty" gorm:"type:text"`
	Status       string     `json:"status" gorm:"type:varchar(20);default:'active'"`
	MadeBy       string     `json:"made_by,omitempty" gorm:"type:varchar(255)"`
	Provenance   Provenance `json:"provenance" gorm:"type:varchar(10);default:'manual'"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Decision) TableName() string {
	return "decisions"
}

// NewDecision creates a manually entered decision
func NewDecision(projectID uuid.UUID, title string) *Decision {
	return &Decision{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Title:      title,
		Status:     DecisionStatusActive,
		Provenance: ProvenanceManual,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// NewExtractedDecision creates an AI-extracted decision linked to its source transcript
func NewExtractedDecision(projectID, transcriptID uuid.UUID, title string) *Decision {
	d := NewDecision(projectID, title)
	d.TranscriptID = &transcriptID
	d.Provenance = ProvenanceAI
	return d
}
