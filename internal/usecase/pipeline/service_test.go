package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityhub/clarityhub/errors"
	"github.com/clarityhub/clarityhub/internal/domain/entities"
	"github.com/clarityhub/clarityhub/pkg/llm"
)

// stubLLM answers each stage from a canned response map and records the
// requests it saw.
type stubLLM struct {
	mu        sync.Mutex
	responses map[string]*llm.CompletionResponse
	errs      map[string]error
	requests  []llm.CompletionRequest
}

func newStubLLM() *stubLLM {
	return &stubLLM{
		responses: make(map[string]*llm.CompletionResponse),
		errs:      make(map[string]error),
	}
}

func (s *stubLLM) respond(stage, text string) {
	s.responses[stage] = &llm.CompletionResponse{Text: text}
}

func (s *stubLLM) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if err, ok := s.errs[req.Stage]; ok {
		return nil, err
	}
	if resp, ok := s.responses[req.Stage]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("unexpected stage %q", req.Stage)
}

func (s *stubLLM) requestFor(stage string) (llm.CompletionRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if req.Stage == stage {
			return req, true
		}
	}
	return llm.CompletionRequest{}, false
}

type mockTranscriptRepo struct {
	mu         sync.Mutex
	transcript *entities.Transcript

	claimResult bool
	claimErr    error
	claims      int

	savedCleaned string
	savedSummary string

	completed bool
	failed    bool
	failMsg   string

	done chan struct{}
}

func newMockTranscriptRepo(t *entities.Transcript) *mockTranscriptRepo {
	return &mockTranscriptRepo{
		transcript:  t,
		claimResult: true,
		done:        make(chan struct{}),
	}
}

func (m *mockTranscriptRepo) Create(context.Context, *entities.Transcript) error { return nil }

func (m *mockTranscriptRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.transcript == nil || m.transcript.ID != id {
		return nil, nil
	}
	clone := *m.transcript
	return &clone, nil
}

func (m *mockTranscriptRepo) Update(context.Context, *entities.Transcript) error { return nil }

func (m *mockTranscriptRepo) ClaimForProcessing(_ context.Context, _ uuid.UUID, projectID *uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claims++
	if m.claimErr != nil {
		return false, m.claimErr
	}
	if m.claimResult && projectID != nil {
		m.transcript.ProjectID = projectID
	}
	return m.claimResult, nil
}

func (m *mockTranscriptRepo) SaveCleanup(_ context.Context, _ uuid.UUID, cleanedText, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedCleaned = cleanedText
	m.savedSummary = summary
	m.transcript.CleanedText = cleanedText
	m.transcript.Summary = summary
	return nil
}

func (m *mockTranscriptRepo) MarkCompleted(context.Context, uuid.UUID) error {
	m.mu.Lock()
	m.completed = true
	m.mu.Unlock()
	close(m.done)
	return nil
}

func (m *mockTranscriptRepo) MarkFailed(_ context.Context, _ uuid.UUID, errMsg string) error {
	m.mu.Lock()
	m.failed = true
	m.failMsg = errMsg
	m.mu.Unlock()
	close(m.done)
	return nil
}

func (m *mockTranscriptRepo) SaveTranscription(context.Context, uuid.UUID, string, string, int) error {
	return nil
}

func (m *mockTranscriptRepo) MarkTranscriptionFailed(context.Context, uuid.UUID) error { return nil }

func (m *mockTranscriptRepo) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline run did not finish")
	}
}

type mockProjectRepo struct {
	mu      sync.Mutex
	project *entities.Project

	updatedSummary string
	updated        bool
}

func (m *mockProjectRepo) Create(context.Context, *entities.Project) error { return nil }

func (m *mockProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.project == nil || m.project.ID != id {
		return nil, nil
	}
	clone := *m.project
	return &clone, nil
}

func (m *mockProjectRepo) List(context.Context, *uuid.UUID) ([]*entities.Project, error) {
	return nil, nil
}

func (m *mockProjectRepo) UpdateStatusSummary(_ context.Context, _ uuid.UUID, summary string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = true
	m.updatedSummary = summary
	return nil
}

type mockActionItemRepo struct {
	mu      sync.Mutex
	created []*entities.ActionItem
}

func (m *mockActionItemRepo) CreateMany(_ context.Context, items []*entities.ActionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, items...)
	return nil
}

func (m *mockActionItemRepo) ListByProject(context.Context, uuid.UUID) ([]entities.ActionItem, error) {
	return nil, nil
}

func (m *mockActionItemRepo) ListByTranscript(context.Context, uuid.UUID) ([]entities.ActionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.ActionItem, 0, len(m.created))
	for _, it := range m.created {
		out = append(out, *it)
	}
	return out, nil
}

type mockDecisionRepo struct {
	mu      sync.Mutex
	created []*entities.Decision
}

func (m *mockDecisionRepo) CreateMany(_ context.Context, decisions []*entities.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, decisions...)
	return nil
}

func (m *mockDecisionRepo) ListByProject(context.Context, uuid.UUID) ([]entities.Decision, error) {
	return nil, nil
}

func (m *mockDecisionRepo) ListByTranscript(context.Context, uuid.UUID) ([]entities.Decision, error) {
	return nil, nil
}

type mockReportRepo struct {
	mu      sync.Mutex
	created []*entities.Report
}

func (m *mockReportRepo) Create(_ context.Context, report *entities.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, report)
	return nil
}

func (m *mockReportRepo) ListByProject(context.Context, uuid.UUID) ([]entities.Report, error) {
	return nil, nil
}

type mockStatusCache struct {
	mu      sync.Mutex
	history []entities.ProcessingStatus
	lastErr string
}

func (m *mockStatusCache) SetStatus(_ context.Context, _ uuid.UUID, status entities.ProcessingStatus, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, status)
	m.lastErr = errMsg
	return nil
}

type fixture struct {
	service     *Service
	llm         *stubLLM
	transcripts *mockTranscriptRepo
	projects    *mockProjectRepo
	actionItems *mockActionItemRepo
	decisions   *mockDecisionRepo
	reports     *mockReportRepo
	cache       *mockStatusCache
	transcript  *entities.Transcript
	project     *entities.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	project := entities.NewProject("Atlas Migration")
	transcript := entities.NewTranscript("Weekly sync", &project.ID)
	transcript.RawText = "um so we uh agreed to ship the importer next week"

	f := &fixture{
		llm:         newStubLLM(),
		transcripts: newMockTranscriptRepo(transcript),
		projects:    &mockProjectRepo{project: project},
		actionItems: &mockActionItemRepo{},
		decisions:   &mockDecisionRepo{},
		reports:     &mockReportRepo{},
		cache:       &mockStatusCache{},
		transcript:  transcript,
		project:     project,
	}
	f.service = NewService(
		f.transcripts, f.projects, f.actionItems, f.decisions, f.reports,
		f.llm, f.cache, nil,
	)
	return f
}

func (f *fixture) respondAllStages() {
	f.llm.respond("cleanup", `{"cleaned_text": "We agreed to ship the importer next week.", "summary": "Importer ships next week."}`)
	f.llm.respond("status_rollup", `{"status_summary": "## Current Status\nImporter ships next week."}`)
	f.llm.respond("action_items", `{"action_items": [{"title": "Ship the importer", "description": "", "priority": "high", "assignee": "Dana"}]}`)
	f.llm.respond("decisions", `{"decisions": [{"title": "Ship importer next week", "description": "", "context": "capacity freed up", "made_by": ""}]}`)
	f.llm.respond("report", `{"title": "Weekly sync notes", "content": "# Weekly sync\n\nImporter ships next week."}`)
}

func allOptions() Options {
	return Options{
		ExtractActionItems: true,
		ExtractDecisions:   true,
		GenerateReport:     true,
		ReportType:         entities.ReportTypeMeeting,
	}
}

func TestStartProcessing_FullRunSucceeds(t *testing.T) {
	f := newFixture(t)
	f.respondAllStages()

	err := f.service.StartProcessing(context.Background(), f.transcript.ID, allOptions())
	require.NoError(t, err)
	f.transcripts.wait(t)

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.completed)
	assert.False(t, f.transcripts.failed)
	assert.Equal(t, "We agreed to ship the importer next week.", f.transcripts.savedCleaned)
	assert.Equal(t, "Importer ships next week.", f.transcripts.savedSummary)
	f.transcripts.mu.Unlock()

	f.projects.mu.Lock()
	assert.True(t, f.projects.updated)
	assert.Contains(t, f.projects.updatedSummary, "Importer ships next week")
	f.projects.mu.Unlock()

	f.actionItems.mu.Lock()
	require.Len(t, f.actionItems.created, 1)
	item := f.actionItems.created[0]
	assert.Equal(t, "Ship the importer", item.Title)
	assert.Equal(t, entities.ActionItemPriorityHigh, item.Priority)
	assert.Equal(t, entities.ActionItemStatusOpen, item.Status)
	assert.Equal(t, entities.ProvenanceAI, item.Provenance)
	require.NotNil(t, item.TranscriptID)
	assert.Equal(t, f.transcript.ID, *item.TranscriptID)
	f.actionItems.mu.Unlock()

	f.decisions.mu.Lock()
	require.Len(t, f.decisions.created, 1)
	assert.Equal(t, entities.ProvenanceAI, f.decisions.created[0].Provenance)
	f.decisions.mu.Unlock()

	f.reports.mu.Lock()
	require.Len(t, f.reports.created, 1)
	assert.Equal(t, "Weekly sync notes", f.reports.created[0].Title)
	assert.Equal(t, entities.ReportTypeMeeting, f.reports.created[0].Type)
	f.reports.mu.Unlock()

	f.cache.mu.Lock()
	require.NotEmpty(t, f.cache.history)
	assert.Equal(t, entities.ProcessingStatusProcessing, f.cache.history[0])
	assert.Equal(t, entities.ProcessingStatusCompleted, f.cache.history[len(f.cache.history)-1])
	f.cache.mu.Unlock()
}

func TestStartProcessing_TranscriptNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.service.StartProcessing(context.Background(), uuid.New(), Options{})
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_TRANSCRIPT_NOT_FOUND, appErr.Code)
}

func TestStartProcessing_NoText(t *testing.T) {
	f := newFixture(t)
	f.transcript.RawText = "   "

	err := f.service.StartProcessing(context.Background(), f.transcript.ID, Options{})
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_TRANSCRIPT_NO_TEXT, appErr.Code)
}

func TestStartProcessing_UnknownProject(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	err := f.service.StartProcessing(context.Background(), f.transcript.ID, Options{ProjectID: &missing})
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_PROJECT_NOT_FOUND, appErr.Code)
}

func TestStartProcessing_InvalidReportType(t *testing.T) {
	f := newFixture(t)

	err := f.service.StartProcessing(context.Background(), f.transcript.ID, Options{
		GenerateReport: true,
		ReportType:     entities.ReportType("quarterly"),
	})
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_INVALID_REPORT_TYPE, appErr.Code)
}

func TestStartProcessing_AlreadyRunningConflict(t *testing.T) {
	f := newFixture(t)
	f.transcripts.claimResult = false

	err := f.service.StartProcessing(context.Background(), f.transcript.ID, Options{})
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_PIPELINE_ALREADY_RUNNING, appErr.Code)

	// The claim was attempted but nothing ran.
	f.transcripts.mu.Lock()
	assert.Equal(t, 1, f.transcripts.claims)
	assert.False(t, f.transcripts.completed)
	assert.False(t, f.transcripts.failed)
	f.transcripts.mu.Unlock()
}

func TestRun_CleanupGatewayErrorFailsRun(t *testing.T) {
	f := newFixture(t)
	f.llm.errs["cleanup"] = fmt.Errorf("gateway unavailable")

	f.service.run(context.Background(), f.transcript.ID, allOptions())

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.failed)
	assert.Contains(t, f.transcripts.failMsg, "gateway unavailable")
	assert.Empty(t, f.transcripts.savedCleaned)
	f.transcripts.mu.Unlock()

	f.cache.mu.Lock()
	assert.Equal(t, entities.ProcessingStatusError, f.cache.history[len(f.cache.history)-1])
	f.cache.mu.Unlock()

	// Requested stages never ran: no records of any kind were written.
	f.actionItems.mu.Lock()
	assert.Empty(t, f.actionItems.created)
	f.actionItems.mu.Unlock()
	f.decisions.mu.Lock()
	assert.Empty(t, f.decisions.created)
	f.decisions.mu.Unlock()
	f.reports.mu.Lock()
	assert.Empty(t, f.reports.created)
	f.reports.mu.Unlock()
	f.projects.mu.Lock()
	assert.False(t, f.projects.updated)
	f.projects.mu.Unlock()
}

func TestRun_ActionItemFailureLeavesOtherStagesIntact(t *testing.T) {
	f := newFixture(t)
	f.respondAllStages()
	f.llm.errs["action_items"] = fmt.Errorf("gateway timeout")

	f.service.run(context.Background(), f.transcript.ID, allOptions())

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.completed)
	assert.Empty(t, f.transcripts.failMsg, "stage failure must not be stored on the transcript")
	f.transcripts.mu.Unlock()

	f.actionItems.mu.Lock()
	assert.Empty(t, f.actionItems.created)
	f.actionItems.mu.Unlock()

	f.decisions.mu.Lock()
	assert.Len(t, f.decisions.created, 1)
	f.decisions.mu.Unlock()

	f.reports.mu.Lock()
	assert.Len(t, f.reports.created, 1)
	f.reports.mu.Unlock()

	f.projects.mu.Lock()
	assert.True(t, f.projects.updated)
	f.projects.mu.Unlock()
}

func TestRun_CleanupTruncationIsFatal(t *testing.T) {
	f := newFixture(t)
	f.llm.responses["cleanup"] = &llm.CompletionResponse{Text: `{"cleaned_text": "partial"}`, Truncated: true}

	f.service.run(context.Background(), f.transcript.ID, Options{})

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.failed)
	assert.Contains(t, f.transcripts.failMsg, "truncated")
	f.transcripts.mu.Unlock()
}

func TestRun_CleanupUnparseableFailsRun(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("cleanup", "I'm sorry, I can't help with that.")

	f.service.run(context.Background(), f.transcript.ID, Options{})

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.failed)
	f.transcripts.mu.Unlock()
}

func TestRun_LaterStageFailuresAreSwallowed(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("cleanup", `{"cleaned_text": "clean", "summary": "short"}`)
	f.llm.respond("status_rollup", "not json at all")
	f.llm.errs["action_items"] = fmt.Errorf("gateway timeout")
	f.llm.respond("decisions", `{"decisions": []}`)
	f.llm.respond("report", `{"title": "", "content": ""}`)

	f.service.run(context.Background(), f.transcript.ID, allOptions())

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.completed, "run must complete despite stage failures")
	assert.False(t, f.transcripts.failed)
	assert.Equal(t, "clean", f.transcripts.savedCleaned)
	f.transcripts.mu.Unlock()

	f.projects.mu.Lock()
	assert.False(t, f.projects.updated, "unparseable rollup must not overwrite the status document")
	f.projects.mu.Unlock()

	f.actionItems.mu.Lock()
	assert.Empty(t, f.actionItems.created)
	f.actionItems.mu.Unlock()

	f.reports.mu.Lock()
	assert.Empty(t, f.reports.created, "empty report content must not be persisted")
	f.reports.mu.Unlock()
}

func TestRun_EmptyExtractionListsAreValid(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("cleanup", `{"cleaned_text": "clean", "summary": "short"}`)
	f.llm.respond("status_rollup", `{"status_summary": "## Current Status\nOn track."}`)
	f.llm.respond("action_items", `{"action_items": []}`)
	f.llm.respond("decisions", `{"decisions": []}`)

	f.service.run(context.Background(), f.transcript.ID, Options{
		ExtractActionItems: true,
		ExtractDecisions:   true,
	})

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.completed)
	f.transcripts.mu.Unlock()

	f.actionItems.mu.Lock()
	assert.Empty(t, f.actionItems.created)
	f.actionItems.mu.Unlock()
	f.decisions.mu.Lock()
	assert.Empty(t, f.decisions.created)
	f.decisions.mu.Unlock()
}

func TestRun_NoProjectSkipsProjectStages(t *testing.T) {
	f := newFixture(t)
	f.transcript.ProjectID = nil
	f.llm.respond("cleanup", `{"cleaned_text": "clean", "summary": "short"}`)

	f.service.run(context.Background(), f.transcript.ID, allOptions())

	f.transcripts.mu.Lock()
	assert.True(t, f.transcripts.completed)
	f.transcripts.mu.Unlock()

	// Only cleanup should have reached the model.
	_, sawRollup := f.llm.requestFor("status_rollup")
	assert.False(t, sawRollup)
	_, sawReport := f.llm.requestFor("report")
	assert.False(t, sawReport)
}

func TestRunStatusRollup_ComposeVsMerge(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("status_rollup", `{"status_summary": "## Current Status\nFresh."}`)

	// Empty previous document composes from scratch.
	_, err := f.service.runStatusRollup(context.Background(), f.project, "first summary")
	require.NoError(t, err)
	req, ok := f.llm.requestFor("status_rollup")
	require.True(t, ok)
	assert.Equal(t, rollupComposeSystemPrompt, req.System)

	// A populated document merges instead.
	f.llm.mu.Lock()
	f.llm.requests = nil
	f.llm.mu.Unlock()
	f.project.StatusSummary = "## Current Status\nExisting."

	_, err = f.service.runStatusRollup(context.Background(), f.project, "second summary")
	require.NoError(t, err)
	req, ok = f.llm.requestFor("status_rollup")
	require.True(t, ok)
	assert.Equal(t, rollupMergeSystemPrompt, req.System)
	assert.Contains(t, req.Prompt, "Existing.")
	assert.Contains(t, req.Prompt, "second summary")
}

func TestGenerateReport_TitleFallsBackToTranscript(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("report", `{"title": "", "content": "# Notes"}`)

	result, err := f.service.generateReport(context.Background(), f.transcript, nil, entities.ReportTypeMeeting)
	require.NoError(t, err)
	assert.Equal(t, f.transcript.Title, result.Title)
	assert.Equal(t, "# Notes", result.Content)
}

func TestRun_ReportUsesPersistedActionItems(t *testing.T) {
	f := newFixture(t)
	f.respondAllStages()

	f.service.run(context.Background(), f.transcript.ID, allOptions())

	req, ok := f.llm.requestFor("report")
	require.True(t, ok)
	// The report prompt must carry the items stage three persisted.
	assert.Contains(t, req.Prompt, "Ship the importer")
	// And the cleaned text, not the raw filler-laden original.
	assert.True(t, strings.Contains(req.Prompt, "We agreed to ship the importer next week."))
}

func TestRun_ExtractionSkipsEmptyTitles(t *testing.T) {
	f := newFixture(t)
	f.llm.respond("cleanup", `{"cleaned_text": "clean", "summary": "short"}`)
	f.llm.respond("status_rollup", `{"status_summary": "ok"}`)
	f.llm.respond("action_items", `{"action_items": [{"title": "", "priority": "high"}, {"title": "Real task", "priority": "nonsense"}]}`)

	f.service.run(context.Background(), f.transcript.ID, Options{ExtractActionItems: true})

	f.actionItems.mu.Lock()
	require.Len(t, f.actionItems.created, 1)
	assert.Equal(t, "Real task", f.actionItems.created[0].Title)
	// Unrecognized priority falls back to the constructor default.
	assert.Equal(t, entities.ActionItemPriorityMedium, f.actionItems.created[0].Priority)
	f.actionItems.mu.Unlock()
}
