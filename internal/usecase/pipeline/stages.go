package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/internal/domain/entities"
	"github.com/clarityhub/clarityhub/pkg/llm"
)

// TruncationError indicates a stage's output hit the token ceiling.
// Only the cleanup stage treats this as fatal: a cleaned transcript cut
// mid-document is unusable and every later stage builds on it.
type TruncationError struct {
	Stage string
}

func (e *TruncationError) Error() string {
	return fmt.Sprintf("%s output truncated by token budget", e.Stage)
}

// runCleanup produces cleaned text and a short summary from the raw transcript.
func (s *Service) runCleanup(ctx context.Context, transcript *entities.Transcript, projectName string) (*entities.CleanupResult, error) {
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:    cleanupSystemPrompt,
		Prompt:    buildCleanupPrompt(transcript.RawText, projectName, transcript.MeetingType),
		MaxTokens: cleanupMaxTokens,
		Stage:     "cleanup",
	})
	if err != nil {
		return nil, err
	}
	if resp.Truncated {
		return nil, &TruncationError{Stage: "cleanup"}
	}

	var result entities.CleanupResult
	if err := s.parser.Parse(resp.Text, &result); err != nil {
		return nil, err
	}
	if result.CleanedText == "" {
		return nil, &ParseError{Reason: "missing cleaned_text in response"}
	}
	return &result, nil
}

// runStatusRollup merges the new summary into the project's cumulative
// status document, or composes a fresh one on the first call.
func (s *Service) runStatusRollup(ctx context.Context, project *entities.Project, newSummary string) (string, error) {
	system := rollupMergeSystemPrompt
	if project.StatusSummary == "" {
		system = rollupComposeSystemPrompt
	}

	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:    system,
		Prompt:    buildRollupPrompt(project.StatusSummary, newSummary, project.Name),
		MaxTokens: rollupMaxTokens,
		Stage:     "status_rollup",
	})
	if err != nil {
		return "", err
	}
	if resp.Truncated {
		// Best effort: a clipped status document is still useful.
		s.logger.Warn("status rollup output truncated",
			zap.String("project_id", project.ID.String()),
		)
	}

	var result entities.RollupResult
	if err := s.parser.Parse(resp.Text, &result); err != nil {
		return "", err
	}
	if result.StatusSummary == "" {
		return "", &ParseError{Reason: "missing status_summary in response"}
	}
	return result.StatusSummary, nil
}

// extractActionItems pulls structured task records out of transcript text.
// An empty list is a valid result.
func (s *Service) extractActionItems(ctx context.Context, text, projectName string) ([]entities.ExtractedActionItem, error) {
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:    actionItemSystemPrompt,
		Prompt:    buildExtractionPrompt(text, projectName),
		MaxTokens: extractionMaxTokens,
		Stage:     "action_items",
	})
	if err != nil {
		return nil, err
	}

	var result entities.ActionItemExtraction
	if err := s.parser.Parse(resp.Text, &result); err != nil {
		return nil, err
	}
	return result.ActionItems, nil
}

// extractDecisions pulls structured decision records out of transcript text.
// An empty list is a valid result.
func (s *Service) extractDecisions(ctx context.Context, text, projectName string) ([]entities.ExtractedDecision, error) {
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:    decisionSystemPrompt,
		Prompt:    buildExtractionPrompt(text, projectName),
		MaxTokens: extractionMaxTokens,
		Stage:     "decisions",
	})
	if err != nil {
		return nil, err
	}

	var result entities.DecisionExtraction
	if err := s.parser.Parse(resp.Text, &result); err != nil {
		return nil, err
	}
	return result.Decisions, nil
}

// generateReport composes a markdown report from the transcript's stored
// text and its currently known action items.
func (s *Service) generateReport(ctx context.Context, transcript *entities.Transcript, items []entities.ActionItem, reportType entities.ReportType) (*entities.ReportResult, error) {
	resp, err := s.llm.Complete(ctx, llm.CompletionRequest{
		System:    reportSystemPrompt,
		Prompt:    buildReportPrompt(transcript, items, reportType),
		MaxTokens: reportMaxTokens,
		Stage:     "report",
	})
	if err != nil {
		return nil, err
	}

	var result entities.ReportResult
	if err := s.parser.Parse(resp.Text, &result); err != nil {
		return nil, err
	}
	if result.Content == "" {
		return nil, &ParseError{Reason: "missing content in response"}
	}
	if result.Title == "" {
		result.Title = transcript.Title
	}
	return &result, nil
}
