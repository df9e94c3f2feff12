package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// DecisionRepository handles decision data operations
type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// CreateMany inserts a batch of decisions in one statement
func (r *DecisionRepository) CreateMany(ctx context.Context, decisions []*entities.Decision) error {
	if len(decisions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(decisions).Error
}

// ListByProject retrieves all decisions for a project
func (r *DecisionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entities.Decision, error) {
	var decisions []entities.Decision
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// ListByTranscript retrieves the decisions extracted from one transcript
func (r *DecisionRepository) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]entities.Decision, error) {
	var decisions []entities.Decision
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at DESC").
		Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}
