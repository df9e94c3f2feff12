package entities

import (
	"time"

	"github.com/google/uuid"
)

// Project groups transcripts, action items, decisions and reports.
// Projects can be nested into folders via ParentID.
type Project struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ParentID        *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Name            string     `json:"name" gorm:"type:varchar(255);not null"`
	Description     string     `json:"description,omitempty" gorm:"type:text"`
	StatusSummary   string     `json:"status_summary,omitempty" gorm:"type:text"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty" gorm:"type:timestamp"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project
func NewProject(name string) *Project {
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
