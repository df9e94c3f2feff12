package project

import (
	"time"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// CreateRequest creates a project or a nested folder
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// Response is the API representation of a project
type Response struct {
	ID              string     `json:"id"`
	ParentID        string     `json:"parent_id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	StatusSummary   string     `json:"status_summary,omitempty"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FromEntity maps a project entity to its API shape
func FromEntity(p *entities.Project) Response {
	resp := Response{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		StatusSummary:   p.StatusSummary,
		StatusUpdatedAt: p.StatusUpdatedAt,
		CreatedAt:       p.CreatedAt,
	}
	if p.ParentID != nil {
		resp.ParentID = p.ParentID.String()
	}
	return resp
}
