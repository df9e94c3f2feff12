package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// ProjectRepository handles project data operations
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project == nil {
		return errors.New("project cannot be nil")
	}
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var project entities.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// List retrieves projects, optionally filtered by parent
func (r *ProjectRepository) List(ctx context.Context, parentID *uuid.UUID) ([]*entities.Project, error) {
	var projects []*entities.Project
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateStatusSummary replaces the rolled-up status narrative for a project
func (r *ProjectRepository) UpdateStatusSummary(ctx context.Context, id uuid.UUID, summary string, updatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status_summary":    summary,
			"status_updated_at": updatedAt,
			"updated_at":        time.Now(),
		}).Error
}
