package transcript

import (
	"time"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
)

// CreateTextRequest ingests a pasted or exported transcript
type CreateTextRequest struct {
	Title     string `json:"title" validate:"required,max=500"`
	Text      string `json:"text" validate:"required"`
	ProjectID string `json:"project_id,omitempty" validate:"omitempty,uuid"`
}

// Response is the API representation of a transcript. Raw and cleaned
// text are included only on detail requests.
type Response struct {
	ID                  string     `json:"id"`
	ProjectID           string     `json:"project_id,omitempty"`
	Title               string     `json:"title"`
	RawText             string     `json:"raw_text,omitempty"`
	CleanedText         string     `json:"cleaned_text,omitempty"`
	Summary             string     `json:"summary,omitempty"`
	ProcessingStatus    string     `json:"processing_status"`
	ProcessingError     string     `json:"processing_error,omitempty"`
	TranscriptionStatus string     `json:"transcription_status,omitempty"`
	DurationSeconds     int        `json:"duration_seconds,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	TranscribedAt       *time.Time `json:"transcribed_at,omitempty"`
}

// FromEntity maps a transcript entity to its API shape
func FromEntity(t *entities.Transcript, includeText bool) Response {
	resp := Response{
		ID:                  t.ID.String(),
		Title:               t.Title,
		Summary:             t.Summary,
		ProcessingStatus:    string(t.ProcessingStatus),
		ProcessingError:     t.ProcessingError,
		TranscriptionStatus: string(t.TranscriptionStatus),
		DurationSeconds:     t.DurationSeconds,
		CreatedAt:           t.CreatedAt,
		TranscribedAt:       t.TranscribedAt,
	}
	if t.ProjectID != nil {
		resp.ProjectID = t.ProjectID.String()
	}
	if includeText {
		resp.RawText = t.RawText
		resp.CleanedText = t.CleanedText
	}
	return resp
}
