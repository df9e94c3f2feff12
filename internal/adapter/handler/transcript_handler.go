package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	transcriptdto "github.com/clarityhub/clarityhub/internal/adapter/dto/transcript"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
	"github.com/clarityhub/clarityhub/internal/usecase/ingest"
)

// Transcript exposes transcript ingestion and retrieval endpoints
type Transcript struct {
	ingestService  *ingest.Service
	transcriptRepo domainrepo.TranscriptRepository
	logger         *zap.Logger
}

// NewTranscript creates the transcript handler
func NewTranscript(ingestService *ingest.Service, transcriptRepo domainrepo.TranscriptRepository, logger *zap.Logger) *Transcript {
	return &Transcript{
		ingestService:  ingestService,
		transcriptRepo: transcriptRepo,
		logger:         logger,
	}
}

// CreateFromText ingests a pasted transcript
func (h *Transcript) CreateFromText(c echo.Context) error {
	var req transcriptdto.CreateTextRequest
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

	transcript, err := h.ingestService.CreateFromText(c.Request().Context(), req.Title, req.Text, projectID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return handleSuccess(c, h.logger, http.StatusCreated, transcriptdto.FromEntity(transcript, false))
}

// Upload ingests a meeting recording as multipart form data. The field
// "file" carries the audio; "title" and "project_id" are optional.
func (h *Transcript) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return handleError(c, h.logger, errors.ErrMissingUploadFile())
	}

	projectID, err := parseOptionalUUID(c.FormValue("project_id"))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	title := c.FormValue("title")
	if title == "" {
		title = fileHeader.Filename
	}

	src, err := fileHeader.Open()
	if err != nil {
		return handleError(c, h.logger, errors.ErrUploadFailed(err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	transcript, err := h.ingestService.CreateFromAudio(
		c.Request().Context(), title, fileHeader.Filename, contentType, src, fileHeader.Size, projectID,
	)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return handleSuccess(c, h.logger, http.StatusAccepted, transcriptdto.FromEntity(transcript, false))
}

// Get returns one transcript including its raw and cleaned text
func (h *Transcript) Get(c echo.Context) error {
	transcriptID, err := parseIDParam(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	transcript, err := h.transcriptRepo.GetByID(c.Request().Context(), transcriptID)
	if err != nil {
		return handleError(c, h.logger, errors.ErrDBQuery(err))
	}
	if transcript == nil {
		return handleError(c, h.logger, errors.ErrTranscriptNotFound())
	}

	return handleSuccess(c, h.logger, http.StatusOK, transcriptdto.FromEntity(transcript, true))
}
