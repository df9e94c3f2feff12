package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProcessingStatus tracks the lifecycle of the AI pipeline for a transcript
type ProcessingStatus string

const (
	ProcessingStatusNotStarted ProcessingStatus = "not_started" // Uploaded, pipeline never ran
	ProcessingStatusProcessing ProcessingStatus = "processing"  // Pipeline currently running
	ProcessingStatusCompleted  ProcessingStatus = "completed"   // Pipeline finished (possibly with skipped sub-results)
	ProcessingStatusError      ProcessingStatus = "error"       // Cleanup stage or the run itself failed
)

// TranscriptionStatus tracks the speech-to-text ingestion lifecycle
type TranscriptionStatus string

const (
	TranscriptionStatusPending   TranscriptionStatus = "pending"
	TranscriptionStatusCompleted TranscriptionStatus = "completed"
	TranscriptionStatusFailed    TranscriptionStatus = "failed"
)

// Transcript is the stored transcript model
type Transcript struct {
	ID                  uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID           *uuid.UUID                                 `json:"project_id,omitempty" gorm:"type:uuid;index"`
	Title               string                                     `json:"title" gorm:"type:varchar(500)"`
	MeetingType         string                                     `json:"meeting_type,omitempty" gorm:"type:varchar(100)"`
	RawText             string                                     `json:"raw_text" gorm:"type:text"`
	CleanedText         string                                     `json:"cleaned_text,omitempty" gorm:"type:text"`
	Summary             string                                     `json:"summary,omitempty" gorm:"type:text"`
	ProcessingStatus    ProcessingStatus                           `json:"processing_status" gorm:"type:varchar(20);index;default:'not_started'"`
	ProcessingError     string                                     `json:"processing_error,omitempty" gorm:"type:text"`
	TranscriptionStatus TranscriptionStatus                        `json:"transcription_status,omitempty" gorm:"type:varchar(20)"`
	AudioObjectKey      string                                     `json:"audio_object_key,omitempty" gorm:"type:varchar(500)"`
	AudioURL            string                                     `json:"audio_url,omitempty" gorm:"type:text"`
	Language            string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	DurationSeconds     int                                        `json:"duration_seconds,omitempty"`
	TranscribedAt       *time.Time                                 `json:"transcribed_at,omitempty" gorm:"type:timestamp"`
	RawData             datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt           time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript
func NewTranscript(title string, projectID *uuid.UUID) *Transcript {
	return &Transcript{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Title:            title,
		ProcessingStatus: ProcessingStatusNotStarted,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
}

// Text returns the best available transcript text, preferring cleaned over raw
func (t *Transcript) Text() string {
	if strings.TrimSpace(t.CleanedText) != "" {
		return t.CleanedText
	}
	return t.RawText
}

// HasText reports whether there is any extractable text to process
func (t *Transcript) HasText() bool {
	return strings.TrimSpace(t.RawText) != "" || strings.TrimSpace(t.CleanedText) != ""
}

// IsProcessing reports whether a pipeline run currently owns this transcript
func (t *Transcript) IsProcessing() bool {
	return t.ProcessingStatus == ProcessingStatusProcessing
}
