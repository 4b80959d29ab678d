package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"readiness/internal/assessment"
	"readiness/internal/llmclient"
)

// stubLLM replays scripted responses (or errors) in call order, repeating the
// last entry once the script runs out.
type stubLLM struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (s *stubLLM) Name() string { return "stub" }
func (s *stubLLM) Close() error { return nil }

func (s *stubLLM) Generate(_ context.Context, _ []llmclient.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if len(s.responses) == 0 {
		return "", llmclient.ErrEmptyResponse
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func testInput() assessment.AssessmentInput {
	return assessment.AssessmentInput{
		CompanySize:       "11-50 employees",
		Industry:          "Technology & Software",
		TechStackMaturity: "3 - Moderate (Using automation, but no AI models)",
		DataAvailability:  []string{"We collect structured data (well-organized, databases, etc.)"},
	}
}

func TestTechnicalConsultant_CapsFollowUpsAtOne(t *testing.T) {
	llm := &stubLLM{responses: []string{`{
		"insights": "solid base",
		"score": 18,
		"recommendations": ["adopt mlops"],
		"followUpQuestions": [
			{"question": "Which cloud provider do you use?", "context": "integration options"},
			{"question": "Do you have a data warehouse?", "context": "storage"},
			{"question": "Any GPUs?", "context": "compute"}
		]
	}`}}
	spec := NewTechnicalConsultant(llm, zap.NewNop())

	result := spec.Analyze(context.Background(), testInput())
	if len(result.FollowUpQuestions) != 1 {
		t.Fatalf("expected 1 follow-up, got %d", len(result.FollowUpQuestions))
	}
	q := result.FollowUpQuestions[0]
	if q.ID != "technical-consultant-q0" {
		t.Fatalf("unexpected id %q", q.ID)
	}
	if q.Answered || q.Answer != "" {
		t.Fatal("new question must be unanswered")
	}
}

func TestDataAnalyst_NeverSurfacesFollowUps(t *testing.T) {
	llm := &stubLLM{responses: []string{`{
		"insights": "ok",
		"score": 12,
		"recommendations": ["r1"],
		"followUpQuestions": [{"question": "why?", "context": "curious"}]
	}`}}
	spec := NewDataAnalyst(llm, zap.NewNop())

	result := spec.Analyze(context.Background(), testInput())
	if len(result.FollowUpQuestions) != 0 {
		t.Fatalf("data analyst must not surface follow-ups, got %d", len(result.FollowUpQuestions))
	}
}

func TestSpecialist_DegradesOnGenerationError(t *testing.T) {
	llm := &stubLLM{errs: []error{errors.New("rate limited")}}
	spec := NewDataAnalyst(llm, zap.NewNop())

	result := spec.Analyze(context.Background(), testInput())
	if result.Score != 0 {
		t.Fatalf("degraded score must be 0, got %d", result.Score)
	}
	if result.Insights != "Error analyzing data readiness" {
		t.Fatalf("unexpected insights %q", result.Insights)
	}
}

func TestSpecialist_DegradesOnUnparsableResponse(t *testing.T) {
	llm := &stubLLM{responses: []string{"I cannot answer in JSON, sorry."}}
	spec := NewStrategyAdvisor(llm, zap.NewNop())

	result := spec.Analyze(context.Background(), testInput())
	if result.Score != 0 || result.Insights != "Error analyzing strategic readiness" {
		t.Fatalf("expected degraded result, got %+v", result)
	}
}

func TestSpecialist_ClampsScore(t *testing.T) {
	llm := &stubLLM{responses: []string{`{"insights":"x","score":99,"recommendations":["r"]}`}}
	spec := NewDataAnalyst(llm, zap.NewNop())

	result := spec.Analyze(context.Background(), testInput())
	if result.Score != assessment.MaxPillarScore {
		t.Fatalf("expected clamp to %d, got %d", assessment.MaxPillarScore, result.Score)
	}
}

func TestProcessFollowUpAnswer_UnknownIDReturnsPrevious(t *testing.T) {
	llm := &stubLLM{}
	spec := NewTechnicalConsultant(llm, zap.NewNop())
	previous := assessment.SpecialistResult{
		Insights: "prior", Score: 10,
		FollowUpQuestions: []assessment.FollowUpQuestion{{ID: "technical-consultant-q0", Question: "q?"}},
	}

	got := spec.ProcessFollowUpAnswer(context.Background(), testInput(), "technical-consultant-q9", "answer", previous)
	if got.Insights != "prior" || got.Score != 10 {
		t.Fatalf("previous result must be returned unchanged, got %+v", got)
	}
	if llm.calls != 0 {
		t.Fatalf("no generation call expected, got %d", llm.calls)
	}
}

func TestProcessFollowUpAnswer_RevisesAndKeepsAnsweredQuestion(t *testing.T) {
	llm := &stubLLM{responses: []string{`{"insights":"revised with the answer","score":20,"recommendations":["new"]}`}}
	spec := NewTechnicalConsultant(llm, zap.NewNop())
	previous := assessment.SpecialistResult{
		Insights: "prior", Score: 12,
		Recommendations:   []string{"old"},
		FollowUpQuestions: []assessment.FollowUpQuestion{{ID: "technical-consultant-q0", Question: "Which cloud?", Context: "ctx"}},
	}

	got := spec.ProcessFollowUpAnswer(context.Background(), testInput(), "technical-consultant-q0", "AWS", previous)
	if got.Insights != "revised with the answer" || got.Score != 20 {
		t.Fatalf("unexpected revision %+v", got)
	}
	if len(got.FollowUpQuestions) != 1 {
		t.Fatalf("question list must be carried over, got %d", len(got.FollowUpQuestions))
	}
	q := got.FollowUpQuestions[0]
	if !q.Answered || q.Answer != "AWS" {
		t.Fatalf("question not marked answered: %+v", q)
	}
	// The caller's previous result is untouched.
	if previous.FollowUpQuestions[0].Answered {
		t.Fatal("previous result mutated")
	}
}

func TestProcessFollowUpAnswer_ParseFailureKeepsAnsweredState(t *testing.T) {
	llm := &stubLLM{responses: []string{"garbage"}}
	spec := NewTechnicalConsultant(llm, zap.NewNop())
	previous := assessment.SpecialistResult{
		Insights: "prior", Score: 12,
		FollowUpQuestions: []assessment.FollowUpQuestion{{ID: "technical-consultant-q0", Question: "q?"}},
	}

	got := spec.ProcessFollowUpAnswer(context.Background(), testInput(), "technical-consultant-q0", "yes", previous)
	if got.Insights != "prior" {
		t.Fatalf("expected prior insights kept, got %q", got.Insights)
	}
	if !got.FollowUpQuestions[0].Answered || got.FollowUpQuestions[0].Answer != "yes" {
		t.Fatalf("answered state must survive the failed revision: %+v", got.FollowUpQuestions[0])
	}
}

func TestRoleFromQuestionID(t *testing.T) {
	if role, ok := RoleFromQuestionID("technical-consultant-q0"); !ok || role != RoleTechnicalConsultant {
		t.Fatalf("got %q ok=%v", role, ok)
	}
	if _, ok := RoleFromQuestionID("mystery-q0"); ok {
		t.Fatal("unknown prefix must not resolve")
	}
}
