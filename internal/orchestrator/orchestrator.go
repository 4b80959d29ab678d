package orchestrator

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/progress"
)

// Orchestrator fans assessment input out to the specialists in parallel and
// aggregates their results into a report. A specialist failure never fails
// the run; only a cancelled context does.
type Orchestrator struct {
	specialists map[agent.Role]agent.Specialist
	reporter    *agent.ReportGenerator
	log         *zap.Logger
}

func New(specialists []agent.Specialist, reporter *agent.ReportGenerator, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	byRole := make(map[agent.Role]agent.Specialist, len(specialists))
	for _, s := range specialists {
		byRole[s.Role()] = s
	}
	return &Orchestrator{specialists: byRole, reporter: reporter, log: log}
}

// Run executes the full assessment: parallel specialist analysis followed by
// aggregation. The returned state carries everything a later follow-up round
// needs.
func (o *Orchestrator) Run(ctx context.Context, input assessment.AssessmentInput, sink progress.Sink) (*RunState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = progress.NopSink{}
	}
	sink.Emit(progress.Event{Stage: progress.StageSpecialistsStarted})

	state := NewRunState()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, role := range agent.Roles() {
		spec, ok := o.specialists[role]
		if !ok {
			o.log.Warn("specialist missing, using degraded result", zap.String("role", string(role)))
			degraded := agent.DegradedResult(role)
			state.Results[role] = &degraded
			continue
		}
		wg.Add(1)
		go func(role agent.Role, spec agent.Specialist) {
			defer wg.Done()
			result := spec.Analyze(ctx, input)
			mu.Lock()
			state.Results[role] = &result
			mu.Unlock()
			sink.Emit(progress.Event{Stage: progress.StageSpecialistDone, Role: string(role)})
		}(role, spec)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := o.reporter.Generate(ctx, input, state.Results)
	state.Report = &report
	sink.Emit(progress.Event{Stage: progress.StageAggregated})

	if outstanding := state.OutstandingQuestions(); len(outstanding) > 0 {
		sink.Emit(progress.Event{Stage: progress.StageQuestionsOutstanding})
	}
	return state, nil
}

// Reaggregate rebuilds the report from the current per-role results without
// re-running the specialists. The previous report is replaced, not merged.
func (o *Orchestrator) Reaggregate(ctx context.Context, input assessment.AssessmentInput, state *RunState) *assessment.Report {
	report := o.reporter.Generate(ctx, input, state.Results)
	state.Report = &report
	return &report
}
