package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityhub/clarityhub/errors"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

type stubProjectRepo struct {
	project *entities.Project
}

func (s *stubProjectRepo) Create(context.Context, *entities.Project) error { return nil }

func (s *stubProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	if s.project == nil || s.project.ID != id {
		return nil, nil
	}
	return s.project, nil
}

func (s *stubProjectRepo) List(context.Context, *uuid.UUID) ([]*entities.Project, error) {
	return nil, nil
}

func (s *stubProjectRepo) UpdateStatusSummary(context.Context, uuid.UUID, string, time.Time) error {
	return nil
}

type stubActionItemRepo struct {
	items []entities.ActionItem
}

func (s *stubActionItemRepo) CreateMany(context.Context, []*entities.ActionItem) error { return nil }

func (s *stubActionItemRepo) ListByProject(context.Context, uuid.UUID) ([]entities.ActionItem, error) {
	return s.items, nil
}

func (s *stubActionItemRepo) ListByTranscript(context.Context, uuid.UUID) ([]entities.ActionItem, error) {
	return nil, nil
}

type stubDecisionRepo struct{}

func (stubDecisionRepo) CreateMany(context.Context, []*entities.Decision) error { return nil }

func (stubDecisionRepo) ListByProject(context.Context, uuid.UUID) ([]entities.Decision, error) {
	return nil, nil
}

func (stubDecisionRepo) ListByTranscript(context.Context, uuid.UUID) ([]entities.Decision, error) {
	return nil, nil
}

type stubReportRepo struct{}

func (stubReportRepo) Create(context.Context, *entities.Report) error { return nil }

func (stubReportRepo) ListByProject(context.Context, uuid.UUID) ([]entities.Report, error) {
	return nil, nil
}

func TestListActionItems_SortsAndScopes(t *testing.T) {
	project := entities.NewProject("Atlas")
	now := time.Now()
	repo := &stubActionItemRepo{items: []entities.ActionItem{
		item("done", entities.ActionItemStatusDone, entities.ActionItemPriorityHigh, now),
		item("open", entities.ActionItemStatusOpen, entities.ActionItemPriorityLow, now),
	}}

	svc := NewService(&stubProjectRepo{project: project}, repo, stubDecisionRepo{}, stubReportRepo{}, nil)

	items, err := svc.ListActionItems(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "open", items[0].Title)
	assert.Equal(t, "done", items[1].Title)
}

func TestListActionItems_UnknownProject(t *testing.T) {
	svc := NewService(&stubProjectRepo{}, &stubActionItemRepo{}, stubDecisionRepo{}, stubReportRepo{}, nil)

	_, err := svc.ListActionItems(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_PROJECT_NOT_FOUND, appErr.Code)
}

func TestProjectStatus_ReturnsRollupDocument(t *testing.T) {
	project := entities.NewProject("Atlas")
	project.StatusSummary = "## Current Status\nOn track."

	svc := NewService(&stubProjectRepo{project: project}, &stubActionItemRepo{}, stubDecisionRepo{}, stubReportRepo{}, nil)

	got, err := svc.ProjectStatus(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.StatusSummary, got.StatusSummary)
}
