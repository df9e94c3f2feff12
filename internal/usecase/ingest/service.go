package ingest

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
)

// ObjectStore is the blob storage boundary for uploaded recordings
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Service ingests meeting recordings and raw transcript text. Audio
// uploads go to object storage and then through speech-to-text; text
// uploads are stored directly.
type Service struct {
	transcriptRepo domainrepo.TranscriptRepository
	store          ObjectStore
	aaiClient      *aai.Client
	logger         *zap.Logger
}

// NewService constructs the ingestion service. aaiClient may be nil when
// audio ingestion is disabled.
func NewService(
	transcriptRepo domainrepo.TranscriptRepository,
	store ObjectStore,
	aaiClient *aai.Client,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transcriptRepo: transcriptRepo,
		store:          store,
		aaiClient:      aaiClient,
		logger:         logger,
	}
}

// CreateFromText stores a pasted or uploaded transcript as raw text
func (s *Service) CreateFromText(ctx context.Context, title, text string, projectID *uuid.UUID) (*entities.Transcript, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.ErrInvalidArgument("transcript text is empty")
	}

	transcript := entities.NewTranscript(title, projectID)
	transcript.RawText = text
	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		return nil, errors.ErrDBQuery(err)
	}

	s.logger.Info("📝 Transcript created from text",
		zap.String("transcript_id", transcript.ID.String()),
		zap.Int("text_len", len(text)),
	)
	return transcript, nil
}

// CreateFromAudio stores an uploaded recording, kicks off speech-to-text
// in the background and returns the pending transcript immediately.
func (s *Service) CreateFromAudio(ctx context.Context, title, filename, contentType string, reader io.Reader, size int64, projectID *uuid.UUID) (*entities.Transcript, error) {
	if s.aaiClient == nil {
		return nil, errors.ErrInvalidArgument("audio ingestion is not configured")
	}

	transcript := entities.NewTranscript(title, projectID)
	transcript.TranscriptionStatus = entities.TranscriptionStatusPending
	transcript.AudioObjectKey = fmt.Sprintf("recordings/%s%s", transcript.ID, path.Ext(filename))

	if err := s.store.UploadFile(ctx, transcript.AudioObjectKey, reader, size, contentType); err != nil {
		return nil, errors.ErrUploadFailed(err)
	}
	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		return nil, errors.ErrDBQuery(err)
	}

	s.logger.Info("🎙️ Recording uploaded, starting transcription",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("object_key", transcript.AudioObjectKey),
	)

	go s.transcribe(context.Background(), transcript.ID, transcript.AudioObjectKey)

	return transcript, nil
}

// transcribe runs the speech-to-text job and persists the result
func (s *Service) transcribe(ctx context.Context, transcriptID uuid.UUID, objectKey string) {
	audioURL, err := s.store.GetFileURL(ctx, objectKey, time.Hour)
	if err != nil {
		s.logger.Error("❌ Failed to presign recording URL",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
		s.failTranscription(ctx, transcriptID)
		return
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	var result aai.Transcript
	submitFn := func() error {
		var submitErr error
		result, submitErr = s.aaiClient.Transcripts.TranscribeFromURL(ctx, audioURL, params)
		return submitErr
	}

	// The provider is flaky on submission occasionally, so retry the
	// whole job with exponential backoff before giving up.
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 5 * time.Minute

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		s.logger.Error("❌ Transcription failed after retries",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
		s.failTranscription(ctx, transcriptID)
		return
	}

	if result.Status == aai.TranscriptStatusError {
		msg := ""
		if result.Error != nil {
			msg = *result.Error
		}
		s.logger.Error("❌ Transcription job returned error status",
			zap.String("transcript_id", transcriptID.String()),
			zap.String("provider_error", msg),
		)
		s.failTranscription(ctx, transcriptID)
		return
	}

	text := ""
	if result.Text != nil {
		text = *result.Text
	}
	language := ""
	if result.LanguageCode != "" {
		language = string(result.LanguageCode)
	}
	duration := 0
	if result.AudioDuration != nil {
		duration = int(*result.AudioDuration)
	}

	if err := s.transcriptRepo.SaveTranscription(ctx, transcriptID, text, language, duration); err != nil {
		s.logger.Error("❌ Failed to persist transcription",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("✅ Transcription completed",
		zap.String("transcript_id", transcriptID.String()),
		zap.Int("duration_seconds", duration),
		zap.Int("text_len", len(text)),
	)
}

func (s *Service) failTranscription(ctx context.Context, transcriptID uuid.UUID) {
	if err := s.transcriptRepo.MarkTranscriptionFailed(ctx, transcriptID); err != nil {
		s.logger.Error("❌ Failed to mark transcription failed",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
	}
}
