package orchestrator

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/llmclient"
	"readiness/internal/progress"
)

type stubLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (s *stubLLM) Name() string { return "stub" }
func (s *stubLLM) Close() error { return nil }

func (s *stubLLM) Generate(_ context.Context, _ []llmclient.Message) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubSpecialist struct {
	role     agent.Role
	result   assessment.SpecialistResult
	revised  assessment.SpecialistResult
	revCalls int
}

func (s *stubSpecialist) Role() agent.Role { return s.role }

func (s *stubSpecialist) Analyze(_ context.Context, _ assessment.AssessmentInput) assessment.SpecialistResult {
	return s.result
}

func (s *stubSpecialist) ProcessFollowUpAnswer(_ context.Context, _ assessment.AssessmentInput, questionID, answer string, previous assessment.SpecialistResult) assessment.SpecialistResult {
	s.revCalls++
	out := s.revised
	out.FollowUpQuestions = append([]assessment.FollowUpQuestion(nil), previous.FollowUpQuestions...)
	if q := out.Question(questionID); q != nil {
		q.Answered = true
		q.Answer = answer
	}
	return out
}

const validReportJSON = `{
	"overallScore": 53,
	"readinessLevel": "Advancing",
	"description": "moderate readiness",
	"pillars": {"technologyReadiness": 18, "leadershipAlignment": 10, "actionableStrategy": 10, "systemsIntegration": 15},
	"recommendations": "do the work"
}`

type captureSink struct {
	mu     sync.Mutex
	stages []string
}

func (c *captureSink) Emit(ev progress.Event) {
	c.mu.Lock()
	c.stages = append(c.stages, ev.Stage)
	c.mu.Unlock()
}

func (c *captureSink) has(stage string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.stages {
		if s == stage {
			return true
		}
	}
	return false
}

func testInput() assessment.AssessmentInput {
	return assessment.AssessmentInput{
		CompanySize:       "11-50 employees",
		Industry:          "Technology & Software",
		TechStackMaturity: "3 - Moderate (Using automation, but no AI models)",
		DataAvailability:  []string{"We collect structured data (well-organized, databases, etc.)"},
	}
}

func newTestOrchestrator(reportLLM *stubLLM, specialists ...agent.Specialist) *Orchestrator {
	return New(specialists, agent.NewReportGenerator(reportLLM, zap.NewNop()), zap.NewNop())
}

func allStubSpecialists() []agent.Specialist {
	return []agent.Specialist{
		&stubSpecialist{role: agent.RoleDataAnalyst, result: assessment.SpecialistResult{Insights: "data", Score: 18}},
		&stubSpecialist{role: agent.RoleStrategyAdvisor, result: assessment.SpecialistResult{Insights: "strategy", Score: 10}},
		&stubSpecialist{role: agent.RoleTechnicalConsultant, result: assessment.SpecialistResult{
			Insights: "tech", Score: 15,
			FollowUpQuestions: []assessment.FollowUpQuestion{{ID: "technical-consultant-q0", Question: "Which cloud provider do you use?"}},
		}},
	}
}

func TestRun_FansOutAndAggregates(t *testing.T) {
	sink := &captureSink{}
	o := newTestOrchestrator(&stubLLM{response: validReportJSON}, allStubSpecialists()...)

	state, err := o.Run(context.Background(), testInput(), sink)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, role := range agent.Roles() {
		if state.Result(role) == nil {
			t.Fatalf("missing result for %s", role)
		}
	}
	if state.Report == nil || state.Report.OverallScore != 53 {
		t.Fatalf("unexpected report %+v", state.Report)
	}
	if !sink.has(progress.StageSpecialistsStarted) || !sink.has(progress.StageAggregated) {
		t.Fatalf("missing lifecycle events: %v", sink.stages)
	}
	if !sink.has(progress.StageQuestionsOutstanding) {
		t.Fatal("expected questions_outstanding event")
	}
}

func TestRun_OneFailingSpecialistDoesNotFailRun(t *testing.T) {
	specialists := []agent.Specialist{
		&stubSpecialist{role: agent.RoleDataAnalyst, result: agent.DegradedResult(agent.RoleDataAnalyst)},
		&stubSpecialist{role: agent.RoleStrategyAdvisor, result: assessment.SpecialistResult{Insights: "strategy", Score: 10}},
		&stubSpecialist{role: agent.RoleTechnicalConsultant, result: assessment.SpecialistResult{Insights: "tech", Score: 15}},
	}
	o := newTestOrchestrator(&stubLLM{response: validReportJSON}, specialists...)

	state, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if state.Report.IsError() {
		t.Fatal("aggregation must survive a degraded specialist")
	}
	if got := state.Result(agent.RoleDataAnalyst); got.Score != 0 {
		t.Fatalf("expected degraded data analyst, got %+v", got)
	}
}

func TestRun_MissingSpecialistDegrades(t *testing.T) {
	specialists := []agent.Specialist{
		&stubSpecialist{role: agent.RoleDataAnalyst, result: assessment.SpecialistResult{Insights: "data", Score: 18}},
	}
	o := newTestOrchestrator(&stubLLM{response: validReportJSON}, specialists...)

	state, err := o.Run(context.Background(), testInput(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := state.Result(agent.RoleTechnicalConsultant); got == nil || got.Score != 0 {
		t.Fatalf("expected degraded stand-in, got %+v", got)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := newTestOrchestrator(&stubLLM{response: validReportJSON}, allStubSpecialists()...)
	if _, err := o.Run(ctx, testInput(), nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
