package assessment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/gateway/repository/assessmentstore"
	"readiness/internal/gateway/repository/reportarchive"
	"readiness/internal/llmclient"
	"readiness/internal/orchestrator"
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
	role    agent.Role
	result  assessment.SpecialistResult
	revised assessment.SpecialistResult
}

func (s *stubSpecialist) Role() agent.Role { return s.role }

func (s *stubSpecialist) Analyze(_ context.Context, _ assessment.AssessmentInput) assessment.SpecialistResult {
	return s.result
}

func (s *stubSpecialist) ProcessFollowUpAnswer(_ context.Context, _ assessment.AssessmentInput, questionID, answer string, previous assessment.SpecialistResult) assessment.SpecialistResult {
	out := s.revised
	out.FollowUpQuestions = append([]assessment.FollowUpQuestion(nil), previous.FollowUpQuestions...)
	if q := out.Question(questionID); q != nil {
		q.Answered = true
		q.Answer = answer
	}
	return out
}

const reportJSON = `{
	"overallScore": 53,
	"readinessLevel": "Advancing",
	"description": "moderate readiness",
	"pillars": {"technologyReadiness": 18, "leadershipAlignment": 10, "actionableStrategy": 10, "systemsIntegration": 15},
	"recommendations": "do the work"
}`

func validInput() assessment.AssessmentInput {
	return assessment.AssessmentInput{
		CompanySize:       "11-50 employees",
		Industry:          "Technology & Software",
		TechStackMaturity: "3 - Moderate (Using automation, but no AI models)",
		DataAvailability:  []string{"We collect structured data (well-organized, databases, etc.)"},
	}
}

type fixture struct {
	svc       *Service
	store     assessmentstore.Store
	archive   *reportarchive.MemoryStore
	reportLLM *stubLLM
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reportLLM := &stubLLM{response: reportJSON}
	specialists := []agent.Specialist{
		&stubSpecialist{role: agent.RoleDataAnalyst, result: assessment.SpecialistResult{Insights: "data", Score: 18}},
		&stubSpecialist{role: agent.RoleStrategyAdvisor, result: assessment.SpecialistResult{Insights: "strategy", Score: 10}},
		&stubSpecialist{
			role: agent.RoleTechnicalConsultant,
			result: assessment.SpecialistResult{
				Insights: "tech", Score: 15,
				FollowUpQuestions: []assessment.FollowUpQuestion{{ID: "technical-consultant-q0", Question: "Which cloud provider do you use?"}},
			},
			revised: assessment.SpecialistResult{Insights: "tech revised", Score: 20},
		},
	}
	orch := orchestrator.New(specialists, agent.NewReportGenerator(reportLLM, zap.NewNop()), zap.NewNop())
	store := assessmentstore.NewMemoryStore()
	archive := reportarchive.NewMemoryStore()
	svc := New(store, archive, orch, progress.NewHub(), time.Minute, zap.NewNop())
	return &fixture{svc: svc, store: store, archive: archive, reportLLM: reportLLM}
}

func TestCreate_HappyPath(t *testing.T) {
	f := newFixture(t)

	out, err := f.svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.False(t, out.Cached)
	assert.Equal(t, 53, out.Score)
	assert.Equal(t, "Advancing", out.Level)
	assert.True(t, strings.HasPrefix(out.Formatted, "# AI Readiness Report"))
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "technical-consultant-q0", out.Questions[0].ID)
	assert.Equal(t, agent.RoleTechnicalConsultant, out.Questions[0].Role)

	// Archive got the formatted text.
	archived, err := f.archive.Get(context.Background(), out.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, out.Formatted, string(archived))
}

func TestCreate_CacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)
	llmCalls := f.reportLLM.calls

	second, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, llmCalls, f.reportLLM.calls, "cache hit must not call the model")
}

func TestCreate_InvalidInputRejected(t *testing.T) {
	f := newFixture(t)
	in := validInput()
	in.Industry = ""
	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestAnswerFollowUp_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Len(t, created.Questions, 1)

	out, err := f.svc.AnswerFollowUp(ctx, validInput(), map[string]string{
		created.Questions[0].ID: "AWS, with a managed Kubernetes cluster",
	})
	require.NoError(t, err)

	assert.Empty(t, out.Warnings)
	assert.Empty(t, out.Questions, "answered question must not re-surface")
	assert.Equal(t, created.Fingerprint, out.Fingerprint)
	assert.Contains(t, out.Formatted, "tech revised")

	// The superseding report was persisted.
	rec, err := f.store.Find(ctx, out.Fingerprint)
	require.NoError(t, err)
	assert.Contains(t, rec.Formatted, "tech revised")
}

func TestAnswerFollowUp_RegistryMissReruns(t *testing.T) {
	f := newFixture(t)

	// No prior Create call: the service re-runs the specialists, then the
	// id routes to the technical consultant's pending question.
	out, err := f.svc.AnswerFollowUp(context.Background(), validInput(), map[string]string{
		"technical-consultant-q0": "GCP",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Contains(t, out.Formatted, "tech revised")
}

func TestAnswerFollowUp_UnknownIDFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = f.svc.AnswerFollowUp(ctx, validInput(), map[string]string{"mystery-q0": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAnswerFollowUp_PartialBatchReportsWarnings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, validInput())
	require.NoError(t, err)

	out, err := f.svc.AnswerFollowUp(ctx, validInput(), map[string]string{
		created.Questions[0].ID: "AWS",
		"mystery-q0":            "x",
	})
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "mystery-q0")
}

func TestCreate_RubricFallbackOnAggregationError(t *testing.T) {
	f := newFixture(t)
	f.reportLLM.response = "not json at all"

	out, err := f.svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	rubric := assessment.ScoreRubric(validInput())
	assert.Equal(t, rubric.Score, out.Score)
	assert.Equal(t, rubric.ReadinessLevel, out.Level)
	require.NotEmpty(t, out.Warnings)
	assert.Contains(t, out.Warnings[0], "Error generating AI readiness report")
}
