package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/gateway/repository/assessmentstore"
	"readiness/internal/gateway/repository/reportarchive"
	"readiness/internal/observability"
	"readiness/internal/orchestrator"
	"readiness/internal/progress"
)

const defaultRunStateTTL = 30 * time.Minute

// Result is the renderable outcome of a create or answer call. Every failure
// mode short of a rejected request still produces one.
type Result struct {
	Fingerprint     string
	Formatted       string
	Score           int
	Level           string
	Description     string
	Recommendations string
	Cached          bool
	Questions       []orchestrator.RoleQuestion
	Warnings        []string
}

// Service implements the assessment use cases on top of the orchestrator, the
// fingerprint store and the report archive. Run state is held in a TTL
// registry keyed by fingerprint so follow-up answers can find their run.
type Service struct {
	store    assessmentstore.Store
	archive  reportarchive.Store
	orch     *orchestrator.Orchestrator
	registry *expirable.LRU[string, *orchestrator.RunState]
	hub      *progress.Hub
	log      *zap.Logger
}

func New(store assessmentstore.Store, archive reportarchive.Store, orch *orchestrator.Orchestrator, hub *progress.Hub, runStateTTL time.Duration, log *zap.Logger) *Service {
	if runStateTTL <= 0 {
		runStateTTL = defaultRunStateTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		archive:  archive,
		orch:     orch,
		registry: expirable.NewLRU[string, *orchestrator.RunState](1024, nil, runStateTTL),
		hub:      hub,
		log:      log,
	}
}

// Create runs the full assessment for the given input, or returns the cached
// result when the fingerprint has been seen before.
func (s *Service) Create(ctx context.Context, input assessment.AssessmentInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	fp, err := assessment.Fingerprint(input)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	if rec, err := s.store.Find(ctx, fp); err == nil {
		observability.CacheLookups.WithLabelValues("hit").Inc()
		observability.AssessmentRuns.WithLabelValues("cached").Inc()
		state := stateFromRecord(rec)
		s.registry.Add(fp, state)
		out := resultFromState(fp, rec.Formatted, input, state)
		out.Cached = true
		return out, nil
	} else if !errors.Is(err, assessmentstore.ErrNotFound) {
		s.log.Warn("store lookup failed", zap.String("fingerprint", fp), zap.Error(err))
	}
	observability.CacheLookups.WithLabelValues("miss").Inc()

	state, err := s.runAndPersist(ctx, fp, input)
	if err != nil {
		observability.AssessmentRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	observability.AssessmentRuns.WithLabelValues("ok").Inc()
	return resultFromState(fp, formatReport(input, state), input, state), nil
}

// AnswerFollowUp applies one or more follow-up answers to the run identified
// by the input's fingerprint and returns the reconciled result. A registry
// miss re-runs the specialists first; the id-prefix routing fallback covers
// question ids minted by that earlier generation.
func (s *Service) AnswerFollowUp(ctx context.Context, input assessment.AssessmentInput, answers map[string]string) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("at least one answer is required")
	}
	fp, err := assessment.Fingerprint(input)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	state, ok := s.registry.Get(fp)
	if !ok {
		s.log.Info("run state expired, re-running specialists", zap.String("fingerprint", fp))
		state, err = s.orch.Run(ctx, input, s.sink(fp))
		if err != nil {
			return nil, err
		}
	}

	report, answerErrs, err := s.orch.ProcessAnswers(ctx, input, orchestrator.SortAnswers(answers), state, s.sink(fp))
	if err != nil {
		observability.AssessmentRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	state.Report = report

	formatted := formatReport(input, state)
	if err := s.persist(ctx, fp, input, state, formatted); err != nil {
		s.log.Warn("persist after reconciliation failed", zap.String("fingerprint", fp), zap.Error(err))
	}
	s.registry.Add(fp, state)

	out := resultFromState(fp, formatted, input, state)
	for _, e := range answerErrs {
		out.Warnings = append(out.Warnings, e.Error())
	}
	return out, nil
}

func (s *Service) runAndPersist(ctx context.Context, fp string, input assessment.AssessmentInput) (*orchestrator.RunState, error) {
	state, err := s.orch.Run(ctx, input, s.sink(fp))
	if err != nil {
		return nil, err
	}
	formatted := formatReport(input, state)
	if err := s.persist(ctx, fp, input, state, formatted); err != nil {
		s.log.Warn("persist failed", zap.String("fingerprint", fp), zap.Error(err))
	}
	s.registry.Add(fp, state)
	return state, nil
}

func (s *Service) persist(ctx context.Context, fp string, input assessment.AssessmentInput, state *orchestrator.RunState, formatted string) error {
	rec := &assessmentstore.Record{
		Fingerprint: fp,
		Input:       input,
		Results:     make(map[string]assessment.SpecialistResult, len(state.Results)),
		Formatted:   formatted,
	}
	for role, r := range state.Results {
		if r != nil {
			rec.Results[string(role)] = *r
		}
	}
	if state.Report != nil {
		rec.Report = *state.Report
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.Put(ctx, fp, []byte(formatted)); err != nil {
			s.log.Warn("report archive failed", zap.String("fingerprint", fp), zap.Error(err))
		}
	}
	return nil
}

func (s *Service) sink(fp string) progress.Sink {
	if s.hub == nil {
		return progress.NopSink{}
	}
	return progress.KeyedSink{Hub: s.hub, Key: fp}
}

func stateFromRecord(rec *assessmentstore.Record) *orchestrator.RunState {
	state := orchestrator.NewRunState()
	for roleStr, r := range rec.Results {
		result := r
		state.Results[agent.Role(roleStr)] = &result
		for _, q := range result.FollowUpQuestions {
			if q.Answered {
				state.MarkProcessed(q.ID)
			}
		}
	}
	report := rec.Report
	state.Report = &report
	return state
}

func resultFromState(fp, formatted string, input assessment.AssessmentInput, state *orchestrator.RunState) *Result {
	out := &Result{
		Fingerprint: fp,
		Formatted:   formatted,
		Questions:   state.OutstandingQuestions(),
	}
	if state.Report == nil {
		return out
	}
	out.Score = state.Report.OverallScore
	out.Level = state.Report.ReadinessLevel
	out.Description = state.Report.Description
	out.Recommendations = state.Report.Recommendations
	if state.Report.IsError() {
		// Aggregation degraded. The deterministic rubric stands in for the
		// score and band so the caller still gets something renderable.
		rubric := assessment.ScoreRubric(input)
		out.Score = rubric.Score
		out.Level = rubric.ReadinessLevel
		out.Warnings = append(out.Warnings, state.Report.Description)
	}
	return out
}
