package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// TranscriptRepository is the persistence boundary for transcripts.
// Lookup methods return (nil, nil) when no row exists.
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entities.Transcript) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	Update(ctx context.Context, transcript *entities.Transcript) error

	// ClaimForProcessing atomically flips the transcript into the processing
	// state and (optionally) relinks it to a project in the same write. It
	// returns false when another run already holds the processing status.
	ClaimForProcessing(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) (bool, error)

	// SaveCleanup persists the cleanup stage output without touching the
	// processing status.
	SaveCleanup(ctx context.Context, id uuid.UUID, cleanedText, summary string) error

	// MarkCompleted ends a run successfully, clearing any stale error message.
	MarkCompleted(ctx context.Context, id uuid.UUID) error

	// MarkFailed ends a run in the error state with the captured message.
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error

	// SaveTranscription stores the speech-to-text result for an ingested
	// recording and marks the transcription completed.
	SaveTranscription(ctx context.Context, id uuid.UUID, text, language string, durationSeconds int) error

	// MarkTranscriptionFailed records a failed speech-to-text ingestion.
	MarkTranscriptionFailed(ctx context.Context, id uuid.UUID) error
}
