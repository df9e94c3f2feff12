package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	projectdto "github.com/clarityhub/clarityhub/internal/adapter/dto/project"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
	"github.com/clarityhub/clarityhub/internal/usecase/dashboard"
)

// Project exposes project management and dashboard endpoints
type Project struct {
	projectRepo domainrepo.ProjectRepository
	dashboard   *dashboard.Service
	logger      *zap.Logger
}

// NewProject creates the project handler
func NewProject(projectRepo domainrepo.ProjectRepository, dashboardService *dashboard.Service, logger *zap.Logger) *Project {
	return &Project{
		projectRepo: projectRepo,
		dashboard:   dashboardService,
		logger:      logger,
	}
}

// Create creates a project or nested folder
func (h *Project) Create(c echo.Context) error {
	var req projectdto.CreateRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, h.logger, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument(err.Error()))
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	if parentID != nil {
		parent, err := h.projectRepo.GetByID(c.Request().Context(), *parentID)
		if err != nil {
			return handleError(c, h.logger, errors.ErrDBQuery(err))
		}
		if parent == nil {
			return handleError(c, h.logger, errors.ErrProjectNotFound())
		}
	}

	project := entities.NewProject(req.Name)
	project.Description = req.Description
	project.ParentID = parentID
	if err := h.projectRepo.Create(c.Request().Context(), project); err != nil {
		return handleError(c, h.logger, errors.ErrDBQuery(err))
	}

	return handleSuccess(c, h.logger, http.StatusCreated, projectdto.FromEntity(project))
}

// List returns projects, optionally scoped via ?parent_id=
func (h *Project) List(c echo.Context) error {
	parentID, err := parseOptionalUUID(c.QueryParam("parent_id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	projects, err := h.projectRepo.List(c.Request().Context(), parentID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrDBQuery(err))
	}

	resp := make([]projectdto.Response, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, projectdto.FromEntity(p))
	}
	return handleSuccess(c, h.logger, http.StatusOK, resp)
}

// Get returns one project including its status summary
func (h *Project) Get(c echo.Context) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	project, err := h.dashboard.ProjectStatus(c.Request().Context(), projectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, http.StatusOK, projectdto.FromEntity(project))
}

// ActionItems lists the project's action items in presentation order
func (h *Project) ActionItems(c echo.Context) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	items, err := h.dashboard.ListActionItems(c.Request().Context(), projectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, http.StatusOK, items)
}

// Decisions lists the project's decisions in presentation order
func (h *Project) Decisions(c echo.Context) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	decisions, err := h.dashboard.ListDecisions(c.Request().Context(), projectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, http.StatusOK, decisions)
}

// Reports lists the project's generated reports, newest first
func (h *Project) Reports(c echo.Context) error {
	projectID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	reports, err := h.dashboard.ListReports(c.Request().Context(), projectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, http.StatusOK, reports)
}
