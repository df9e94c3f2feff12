package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// ProjectRepository is the persistence boundary for projects.
// GetByID returns (nil, nil) when no row exists.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)

	// List returns projects ordered by recency, optionally scoped to a parent.
	List(ctx context.Context, parentID *uuid.UUID) ([]*entities.Project, error)

	// UpdateStatusSummary replaces the cumulative AI-maintained status
	// document and its timestamp.
	UpdateStatusSummary(ctx context.Context, id uuid.UUID, summary string, updatedAt time.Time) error
}
