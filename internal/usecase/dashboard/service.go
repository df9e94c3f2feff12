package dashboard

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
)

// Service aggregates project records for dashboard listings. Every
// listing applies the deterministic ordering rules so the UI never
// re-sorts client side.
type Service struct {
	projectRepo    domainrepo.ProjectRepository
	actionItemRepo domainrepo.ActionItemRepository
	decisionRepo   domainrepo.DecisionRepository
	reportRepo     domainrepo.ReportRepository
	logger         *zap.Logger
}

// NewService constructs the dashboard service
func NewService(
	projectRepo domainrepo.ProjectRepository,
	actionItemRepo domainrepo.ActionItemRepository,
	decisionRepo domainrepo.DecisionRepository,
	reportRepo domainrepo.ReportRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		projectRepo:    projectRepo,
		actionItemRepo: actionItemRepo,
		decisionRepo:   decisionRepo,
		reportRepo:     reportRepo,
		logger:         logger,
	}
}

// ListActionItems returns the project's action items in presentation order
func (s *Service) ListActionItems(ctx context.Context, projectID uuid.UUID) ([]entities.ActionItem, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	items, err := s.actionItemRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	SortActionItems(items)
	return items, nil
}

// ListDecisions returns the project's decisions in presentation order
func (s *Service) ListDecisions(ctx context.Context, projectID uuid.UUID) ([]entities.Decision, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	decisions, err := s.decisionRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	SortDecisions(decisions)
	return decisions, nil
}

// ListReports returns the project's generated reports
func (s *Service) ListReports(ctx context.Context, projectID uuid.UUID) ([]entities.Report, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	return reports, nil
}

// ProjectStatus returns the project's cumulative AI-maintained status document
func (s *Service) ProjectStatus(ctx context.Context, projectID uuid.UUID) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, errors.ErrDBQuery(err)
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound()
	}
	return project, nil
}

func (s *Service) projectExists(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return errors.ErrDBQuery(err)
	}
	if project == nil {
		return errors.ErrProjectNotFound()
	}
	return nil
}
