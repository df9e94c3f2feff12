package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	pipelinedto "github.com/clarityhub/clarityhub/internal/adapter/dto/pipeline"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
	"github.com/clarityhub/clarityhub/internal/infrastructure/cache"
	"github.com/clarityhub/clarityhub/internal/usecase/pipeline"
)

// Pipeline exposes the processing endpoints: starting a run and polling
// its status.
type Pipeline struct {
	service        *pipeline.Service
	transcriptRepo domainrepo.TranscriptRepository
	statusStore    *cache.StatusStore
	logger         *zap.Logger
}

// NewPipeline creates the pipeline handler. statusStore may be nil; the
// status endpoint then always reads from the database.
func NewPipeline(service *pipeline.Service, transcriptRepo domainrepo.TranscriptRepository, statusStore *cache.StatusStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		service:        service,
		transcriptRepo: transcriptRepo,
		statusStore:    statusStore,
		logger:         logger,
	}
}

// Process starts the AI pipeline for a transcript. The run executes in
// the background; the response only acknowledges the start.
func (h *Pipeline) Process(c echo.Context) error {
	transcriptID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req pipelinedto.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, h.logger, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return handleError(c, h.logger, errors.ErrInvalidArgument(err.Error()))
	}

	projectID, err := parseOptionalUUID(req.ProjectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	opts := pipeline.Options{
		ProjectID:          projectID,
		ExtractActionItems: req.ExtractActionItems,
		ExtractDecisions:   req.ExtractDecisions,
		GenerateReport:     req.GenerateReport,
		ReportType:         entities.ReportType(req.ReportType),
	}

	if err := h.service.StartProcessing(c.Request().Context(), transcriptID, opts); err != nil {
		return handleError(c, h.logger, err)
	}

	resp := pipelinedto.ProcessResponse{
		TranscriptID: transcriptID.String(),
		Status:       string(entities.ProcessingStatusProcessing),
	}
	return handleSuccess(c, h.logger, http.StatusAccepted, resp)
}

// Status answers processing status polls. The Redis mirror is consulted
// first; a miss or cache failure falls back to the database row.
func (h *Pipeline) Status(c echo.Context) error {
	transcriptID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	ctx := c.Request().Context()

	if h.statusStore != nil {
		entry, err := h.statusStore.GetStatus(ctx, transcriptID)
		if err != nil {
			h.logger.Warn("status cache read failed, falling back to db",
				zap.String("transcript_id", transcriptID.String()),
				zap.Error(err),
			)
		} else if entry != nil {
			resp := pipelinedto.StatusResponse{
				TranscriptID: transcriptID.String(),
				Status:       string(entry.Status),
				Error:        entry.Error,
			}
			return handleSuccess(c, h.logger, http.StatusOK, resp)
		}
	}

	transcript, err := h.transcriptRepo.GetByID(ctx, transcriptID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrDBQuery(err))
	}
	if transcript == nil {
		return handleError(c, h.logger, errors.ErrTranscriptNotFound())
	}

	resp := pipelinedto.StatusResponse{
		TranscriptID: transcriptID.String(),
		Status:       string(transcript.ProcessingStatus),
		Error:        transcript.ProcessingError,
	}
	return handleSuccess(c, h.logger, http.StatusOK, resp)
}
