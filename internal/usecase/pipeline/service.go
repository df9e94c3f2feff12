package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clarityhub/clarityhub/errors"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	domainrepo "github.com/clarityhub/clarityhub/internal/domain/repositories"
	"github.com/clarityhub/clarityhub/pkg/jobcontext"
	"github.com/clarityhub/clarityhub/pkg/llm"
)

// Options selects the optional stages of one pipeline run.
type Options struct {
	// ProjectID links (or relinks) the transcript to a project as part of
	// the same write that starts processing.
	ProjectID *uuid.UUID

	ExtractActionItems bool
	ExtractDecisions   bool
	GenerateReport     bool

	// ReportType defaults to meeting when GenerateReport is set.
	ReportType entities.ReportType
}

// StatusCache mirrors the transcript processing status so the poll
// endpoint doesn't have to hit the database every few seconds.
type StatusCache interface {
	SetStatus(ctx context.Context, transcriptID uuid.UUID, status entities.ProcessingStatus, errMsg string) error
}

// Service orchestrates the multi-stage AI pipeline for one transcript:
// cleanup, project status rollup, action item and decision extraction,
// and report generation.
type Service struct {
	transcriptRepo domainrepo.TranscriptRepository
	projectRepo    domainrepo.ProjectRepository
	actionItemRepo domainrepo.ActionItemRepository
	decisionRepo   domainrepo.DecisionRepository
	reportRepo     domainrepo.ReportRepository
	llm            llm.Client
	parser         *Parser
	statusCache    StatusCache
	logger         *zap.Logger
}

// NewService constructs the pipeline service. statusCache may be nil.
func NewService(
	transcriptRepo domainrepo.TranscriptRepository,
	projectRepo domainrepo.ProjectRepository,
	actionItemRepo domainrepo.ActionItemRepository,
	decisionRepo domainrepo.DecisionRepository,
	reportRepo domainrepo.ReportRepository,
	llmClient llm.Client,
	statusCache StatusCache,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		transcriptRepo: transcriptRepo,
		projectRepo:    projectRepo,
		actionItemRepo: actionItemRepo,
		decisionRepo:   decisionRepo,
		reportRepo:     reportRepo,
		llm:            llmClient,
		parser:         NewParser(),
		statusCache:    statusCache,
		logger:         logger,
	}
}

// StartProcessing validates the request, claims the transcript and kicks
// off the background run. It returns synchronously; callers learn about
// completion by polling the transcript's processing status.
func (s *Service) StartProcessing(ctx context.Context, transcriptID uuid.UUID, opts Options) error {
	transcript, err := s.transcriptRepo.GetByID(ctx, transcriptID)
	if err != nil {
		return errors.ErrDBQuery(err)
	}
	if transcript == nil {
		return errors.ErrTranscriptNotFound()
	}
	if !transcript.HasText() {
		return errors.ErrTranscriptNoText()
	}

	if opts.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *opts.ProjectID)
		if err != nil {
			return errors.ErrDBQuery(err)
		}
		if project == nil {
			return errors.ErrProjectNotFound()
		}
	}

	if opts.GenerateReport && opts.ReportType == "" {
		opts.ReportType = entities.ReportTypeMeeting
	}
	if opts.GenerateReport && !entities.ValidReportType(opts.ReportType) {
		return errors.ErrInvalidReportType(string(opts.ReportType))
	}

	// Conditional update closes the check-then-write race: only one of
	// two concurrent start requests gets RowsAffected = 1.
	claimed, err := s.transcriptRepo.ClaimForProcessing(ctx, transcriptID, opts.ProjectID)
	if err != nil {
		return errors.ErrPipelineStartFailed(err)
	}
	if !claimed {
		return errors.ErrPipelineAlreadyRunning()
	}

	s.cacheStatus(ctx, transcriptID, entities.ProcessingStatusProcessing, "")

	s.logger.Info("🚀 pipeline run started",
		zap.String("transcript_id", transcriptID.String()),
		zap.Bool("extract_action_items", opts.ExtractActionItems),
		zap.Bool("extract_decisions", opts.ExtractDecisions),
		zap.Bool("generate_report", opts.GenerateReport),
	)

	go s.run(jobcontext.Begin(transcriptID), transcriptID, opts)

	return nil
}

// run executes the stage sequence for one claimed transcript. Cleanup is
// the foundation: its failure (or a panic anywhere) ends the run in the
// error state. Every later stage is best effort; a failure there is
// logged and swallowed so the cleaned transcript and summary stay
// available, and the transcript still ends up completed.
func (s *Service) run(ctx context.Context, transcriptID uuid.UUID, opts Options) {
	defer func() {
		if r := recover(); r != nil {
			s.failRun(ctx, transcriptID, fmt.Sprintf("panic: %v", r))
		}
	}()

	// Re-read after the claim: project linkage may have changed.
	transcript, err := s.transcriptRepo.GetByID(ctx, transcriptID)
	if err != nil || transcript == nil {
		s.failRun(ctx, transcriptID, fmt.Sprintf("reload transcript: %v", err))
		return
	}

	var project *entities.Project
	if transcript.ProjectID != nil {
		project, err = s.projectRepo.GetByID(ctx, *transcript.ProjectID)
		if err != nil {
			s.logger.Warn("⚠️ could not load linked project, skipping project stages",
				append(jobcontext.Fields(ctx), zap.Error(err))...)
			project = nil
		}
	}
	projectName := ""
	if project != nil {
		projectName = project.Name
	}

	// Stage 1: cleanup. The only fatal stage.
	cleanup, err := s.runCleanup(ctx, transcript, projectName)
	if err != nil {
		s.failRun(ctx, transcriptID, err.Error())
		return
	}
	if err := s.transcriptRepo.SaveCleanup(ctx, transcriptID, cleanup.CleanedText, cleanup.Summary); err != nil {
		s.failRun(ctx, transcriptID, fmt.Sprintf("persist cleanup: %v", err))
		return
	}
	transcript.CleanedText = cleanup.CleanedText
	transcript.Summary = cleanup.Summary
	s.logger.Info("✅ cleanup stage done",
		append(jobcontext.Fields(ctx), zap.Int("cleaned_length", len(cleanup.CleanedText)))...)

	// Stage 2: project status rollup (best effort).
	if project != nil {
		s.runRollupStage(ctx, project, cleanup.Summary)
	}

	// Stage 3: action item extraction (optional, best effort).
	if opts.ExtractActionItems && project != nil {
		s.runActionItemStage(ctx, transcript, project)
	}

	// Stage 4: decision extraction (optional, best effort).
	if opts.ExtractDecisions && project != nil {
		s.runDecisionStage(ctx, transcript, project)
	}

	// Stage 5: report generation (optional, best effort).
	if opts.GenerateReport && project != nil {
		s.runReportStage(ctx, transcriptID, project, opts.ReportType)
	}

	if err := s.transcriptRepo.MarkCompleted(ctx, transcriptID); err != nil {
		s.logger.Error("❌ failed to mark transcript completed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	s.cacheStatus(ctx, transcriptID, entities.ProcessingStatusCompleted, "")

	s.logger.Info("✅ pipeline run completed",
		append(jobcontext.Fields(ctx), zap.Duration("elapsed", jobcontext.Elapsed(ctx)))...)
}

// runRollupStage merges the new summary into the project status document.
func (s *Service) runRollupStage(ctx context.Context, project *entities.Project, summary string) {
	rollup, err := s.runStatusRollup(ctx, project, summary)
	if err != nil {
		s.logger.Warn("⚠️ status rollup stage failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	if err := s.projectRepo.UpdateStatusSummary(ctx, project.ID, rollup, time.Now()); err != nil {
		s.logger.Warn("⚠️ failed to persist status rollup",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	project.StatusSummary = rollup
}

// runActionItemStage extracts and persists AI-provenance action items.
func (s *Service) runActionItemStage(ctx context.Context, transcript *entities.Transcript, project *entities.Project) {
	extracted, err := s.extractActionItems(ctx, transcript.Text(), project.Name)
	if err != nil {
		s.logger.Warn("⚠️ action item extraction stage failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	if len(extracted) == 0 {
		return
	}

	items := make([]*entities.ActionItem, 0, len(extracted))
	for _, e := range extracted {
		if e.Title == "" {
			continue
		}
		item := entities.NewExtractedActionItem(project.ID, transcript.ID, e.Title)
		item.Description = e.Description
		item.Assignee = e.Assignee
		if e.Priority == entities.ActionItemPriorityLow || e.Priority == entities.ActionItemPriorityHigh {
			item.Priority = e.Priority
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}

	if err := s.actionItemRepo.CreateMany(ctx, items); err != nil {
		s.logger.Warn("⚠️ failed to persist extracted action items",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	s.logger.Info("✅ action items extracted",
		append(jobcontext.Fields(ctx), zap.Int("count", len(items)))...)
}

// runDecisionStage extracts and persists AI-provenance decisions.
func (s *Service) runDecisionStage(ctx context.Context, transcript *entities.Transcript, project *entities.Project) {
	extracted, err := s.extractDecisions(ctx, transcript.Text(), project.Name)
	if err != nil {
		s.logger.Warn("⚠️ decision extraction stage failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	if len(extracted) == 0 {
		return
	}

	decisions := make([]*entities.Decision, 0, len(extracted))
	for _, e := range extracted {
		if e.Title == "" {
			continue
		}
		d := entities.NewExtractedDecision(project.ID, transcript.ID, e.Title)
		d.Description = e.Description
		d.Context = e.Context
		d.MadeBy = e.MadeBy
		decisions = append(decisions, d)
	}
	if len(decisions) == 0 {
		return
	}

	if err := s.decisionRepo.CreateMany(ctx, decisions); err != nil {
		s.logger.Warn("⚠️ failed to persist extracted decisions",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	s.logger.Info("✅ decisions extracted",
		append(jobcontext.Fields(ctx), zap.Int("count", len(decisions)))...)
}

// runReportStage re-reads the transcript's stored text and current action
// items before composing, so the report reflects what earlier stages
// actually persisted rather than in-memory values.
func (s *Service) runReportStage(ctx context.Context, transcriptID uuid.UUID, project *entities.Project, reportType entities.ReportType) {
	transcript, err := s.transcriptRepo.GetByID(ctx, transcriptID)
	if err != nil || transcript == nil {
		s.logger.Warn("⚠️ report stage could not reload transcript",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}

	items, err := s.actionItemRepo.ListByTranscript(ctx, transcriptID)
	if err != nil {
		s.logger.Warn("⚠️ report stage could not list action items",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		items = nil
	}

	result, err := s.generateReport(ctx, transcript, items, reportType)
	if err != nil {
		s.logger.Warn("⚠️ report generation stage failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}

	report := entities.NewReport(project.ID, &transcript.ID, result.Title, reportType)
	report.Content = result.Content
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Warn("⚠️ failed to persist report",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
		return
	}
	s.logger.Info("✅ report generated",
		append(jobcontext.Fields(ctx), zap.String("report_id", report.ID.String()))...)
}

// failRun records the terminal error state for a run.
func (s *Service) failRun(ctx context.Context, transcriptID uuid.UUID, errMsg string) {
	s.logger.Error("❌ pipeline run failed",
		append(jobcontext.Fields(ctx), zap.String("error", errMsg))...)
	if err := s.transcriptRepo.MarkFailed(ctx, transcriptID, errMsg); err != nil {
		s.logger.Error("❌ failed to mark transcript as failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...)
	}
	s.cacheStatus(ctx, transcriptID, entities.ProcessingStatusError, errMsg)
}

// cacheStatus mirrors the status to the cache when one is configured.
func (s *Service) cacheStatus(ctx context.Context, transcriptID uuid.UUID, status entities.ProcessingStatus, errMsg string) {
	if s.statusCache == nil {
		return
	}
	if err := s.statusCache.SetStatus(ctx, transcriptID, status, errMsg); err != nil {
		s.logger.Warn("⚠️ failed to cache processing status",
			zap.String("transcript_id", transcriptID.String()),
			zap.Error(err),
		)
	}
}
