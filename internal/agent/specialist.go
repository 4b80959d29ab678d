package agent

import (
	"context"

	"go.uber.org/zap"

	"readiness/internal/assessment"
	"readiness/internal/jsonutil"
	"readiness/internal/llmclient"
)

// maxFollowUpsPerRun caps how many follow-up questions one role may surface
// in a single run. The prompt asks for at most one; responses proposing more
// are truncated, never rejected.
const maxFollowUpsPerRun = 1

type specialistConfig struct {
	role            Role
	systemPrompt    string
	followUpPrompt  string
	allowsFollowUps bool
	degradedInsight string
	degradedAdvice  string
}

// roleSpecialist is the single Specialist implementation; the three roles are
// tagged variants differing only in prompts and follow-up policy.
type roleSpecialist struct {
	cfg specialistConfig
	llm llmclient.Client
	log *zap.Logger
}

func newSpecialist(cfg specialistConfig, llm llmclient.Client, log *zap.Logger) *roleSpecialist {
	if log == nil {
		log = zap.NewNop()
	}
	return &roleSpecialist{
		cfg: cfg,
		llm: llmclient.NewInstrumented(llm, string(cfg.role)),
		log: log.With(zap.String("agent", string(cfg.role))),
	}
}

func (s *roleSpecialist) Role() Role { return s.cfg.role }

// Analyze runs one generation call and parses the result. Any failure along
// the way yields the degraded zero-score result so the other specialists and
// the aggregation continue untouched.
func (s *roleSpecialist) Analyze(ctx context.Context, input assessment.AssessmentInput) assessment.SpecialistResult {
	text, err := s.llm.Generate(ctx, []llmclient.Message{
		llmclient.System(s.cfg.systemPrompt),
		llmclient.User(analysisUserPrompt(input)),
	})
	if err != nil {
		s.log.Warn("generation failed", zap.Error(err))
		return s.degraded()
	}
	result, err := s.parseResult(text)
	if err != nil {
		s.log.Warn("response parse failed", zap.Error(err), zap.String("raw", text))
		return s.degraded()
	}
	return result
}

// ProcessFollowUpAnswer revises the previous analysis with the user's answer.
// An unknown question id is a defined no-op: the previous result is returned
// unchanged. The answered question is spliced back into the revised result so
// answered-state survives the revision.
func (s *roleSpecialist) ProcessFollowUpAnswer(ctx context.Context, input assessment.AssessmentInput, questionID, answer string, previous assessment.SpecialistResult) assessment.SpecialistResult {
	prior := cloneResult(previous)
	q := prior.Question(questionID)
	if q == nil {
		s.log.Warn("follow-up question not found", zap.String("question_id", questionID))
		return previous
	}
	q.Answered = true
	q.Answer = answer
	answered := *q

	text, err := s.llm.Generate(ctx, []llmclient.Message{
		llmclient.System(s.cfg.followUpPrompt),
		llmclient.User(followUpUserPrompt(input, previous, answered, answer)),
	})
	if err != nil {
		s.log.Warn("follow-up generation failed", zap.Error(err))
		return prior
	}
	updated, err := s.parseResult(text)
	if err != nil {
		s.log.Warn("follow-up parse failed", zap.Error(err), zap.String("raw", text))
		return prior
	}

	// Carry over the question list from the prior result, including the
	// newly answered question; the revision never re-creates questions.
	updated.FollowUpQuestions = prior.FollowUpQuestions
	return updated
}

func (s *roleSpecialist) parseResult(text string) (assessment.SpecialistResult, error) {
	payload := jsonutil.ExtractJSONPayload(text)
	if err := validatePayload(specialistSchemaLoader, payload); err != nil {
		return assessment.SpecialistResult{}, err
	}
	var result assessment.SpecialistResult
	if err := jsonutil.UnmarshalFlex([]byte(payload), &result); err != nil {
		return assessment.SpecialistResult{}, err
	}
	result.Score = assessment.ClampScore(result.Score)

	if !s.cfg.allowsFollowUps {
		result.FollowUpQuestions = nil
		return result, nil
	}
	if len(result.FollowUpQuestions) > maxFollowUpsPerRun {
		result.FollowUpQuestions = result.FollowUpQuestions[:maxFollowUpsPerRun]
	}
	for i := range result.FollowUpQuestions {
		result.FollowUpQuestions[i].ID = QuestionID(s.cfg.role, i)
		result.FollowUpQuestions[i].Answered = false
		result.FollowUpQuestions[i].Answer = ""
	}
	return result, nil
}

func (s *roleSpecialist) degraded() assessment.SpecialistResult {
	out := DegradedResult(s.cfg.role)
	if s.cfg.degradedInsight != "" {
		out.Insights = s.cfg.degradedInsight
	}
	if s.cfg.degradedAdvice != "" {
		out.Recommendations = []string{s.cfg.degradedAdvice}
	}
	return out
}

func cloneResult(r assessment.SpecialistResult) assessment.SpecialistResult {
	out := r
	out.Recommendations = append([]string(nil), r.Recommendations...)
	out.FollowUpQuestions = append([]assessment.FollowUpQuestion(nil), r.FollowUpQuestions...)
	return out
}
