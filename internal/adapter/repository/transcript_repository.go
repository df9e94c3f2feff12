package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Create creates a new transcript
func (r *TranscriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Create(transcript).Error
}

// GetByID retrieves a transcript by ID
func (r *TranscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// Update updates a transcript
func (r *TranscriptRepository) Update(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	return r.db.WithContext(ctx).Save(transcript).Error
}

// ClaimForProcessing atomically claims the transcript for one pipeline run.
// The WHERE clause excludes transcripts already processing, so of two
// near-simultaneous start requests only one sees RowsAffected = 1.
// Project linkage is part of the same write when projectID is non-nil.
func (r *TranscriptRepository) ClaimForProcessing(ctx context.Context, id uuid.UUID, projectID *uuid.UUID) (bool, error) {
	updates := map[string]interface{}{
		"processing_status": entities.ProcessingStatusProcessing,
		"processing_error":  "",
		"updated_at":        time.Now(),
	}
	if projectID != nil {
		updates["project_id"] = *projectID
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ? AND processing_status <> ?", id, entities.ProcessingStatusProcessing).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SaveCleanup persists the cleanup stage output
func (r *TranscriptRepository) SaveCleanup(ctx context.Context, id uuid.UUID, cleanedText, summary string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cleaned_text": cleanedText,
			"summary":      summary,
			"updated_at":   time.Now(),
		}).Error
}

// MarkCompleted flips the transcript into the completed state
func (r *TranscriptRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": entities.ProcessingStatusCompleted,
			"processing_error":  "",
			"updated_at":        time.Now(),
		}).Error
}

// MarkFailed flips the transcript into the error state with the captured message
func (r *TranscriptRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": entities.ProcessingStatusError,
			"processing_error":  errMsg,
			"updated_at":        time.Now(),
		}).Error
}

// SaveTranscription stores the speech-to-text result for an ingested recording
func (r *TranscriptRepository) SaveTranscription(ctx context.Context, id uuid.UUID, text, language string, durationSeconds int) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"raw_text":             text,
			"language":             language,
			"duration_seconds":     durationSeconds,
			"transcription_status": entities.TranscriptionStatusCompleted,
			"transcribed_at":       now,
			"updated_at":           now,
		}).Error
}

// MarkTranscriptionFailed records a failed speech-to-text ingestion
func (r *TranscriptRepository) MarkTranscriptionFailed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transcription_status": entities.TranscriptionStatusFailed,
			"updated_at":           time.Now(),
		}).Error
}
