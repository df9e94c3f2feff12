package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// ActionItemRepository is the persistence boundary for action items
type ActionItemRepository interface {
	CreateMany(ctx context.Context, items []*entities.ActionItem) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entities.ActionItem, error)
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]entities.ActionItem, error)
}

// DecisionRepository is the persistence boundary for decisions
type DecisionRepository interface {
	CreateMany(ctx context.Context, decisions []*entities.Decision) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entities.Decision, error)
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]entities.Decision, error)
}

// ReportRepository is the persistence boundary for generated reports
type ReportRepository interface {
	Create(ctx context.Context, report *entities.Report) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entities.Report, error)
}
