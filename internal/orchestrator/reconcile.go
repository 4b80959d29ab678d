package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/observability"
	"readiness/internal/progress"
)

// ErrQuestionNotFound marks a follow-up answer whose question id cannot be
// routed to any specialist.
var ErrQuestionNotFound = errors.New("follow-up question not found")

// Answer pairs a follow-up question id with the user's answer text.
type Answer struct {
	QuestionID string
	Text       string
}

// ProcessAnswers applies a batch of follow-up answers and re-aggregates the
// report once at the end. Individual answer failures are collected and
// returned alongside the new report; the call as a whole fails only when no
// answer could be applied.
func (o *Orchestrator) ProcessAnswers(ctx context.Context, input assessment.AssessmentInput, answers []Answer, state *RunState, sink progress.Sink) (*assessment.Report, []error, error) {
	if state == nil {
		return nil, nil, errors.New("run state is required")
	}
	if len(answers) == 0 {
		return nil, nil, errors.New("no answers supplied")
	}
	if sink == nil {
		sink = progress.NopSink{}
	}

	var answerErrs []error
	applied := 0
	for _, ans := range answers {
		if err := o.applyAnswer(ctx, input, ans, state); err != nil {
			o.log.Warn("follow-up answer failed",
				zap.String("question_id", ans.QuestionID), zap.Error(err))
			observability.FollowUpAnswers.WithLabelValues("error").Inc()
			answerErrs = append(answerErrs, fmt.Errorf("%s: %w", ans.QuestionID, err))
			continue
		}
		observability.FollowUpAnswers.WithLabelValues("ok").Inc()
		applied++
		sink.Emit(progress.Event{Stage: progress.StageAnswerProcessed, Message: ans.QuestionID})
	}

	if applied == 0 {
		return nil, answerErrs, fmt.Errorf("all follow-up answers failed: %w", errors.Join(answerErrs...))
	}

	report := o.Reaggregate(ctx, input, state)
	sink.Emit(progress.Event{Stage: progress.StageReconciled})
	return report, answerErrs, nil
}

func (o *Orchestrator) applyAnswer(ctx context.Context, input assessment.AssessmentInput, ans Answer, state *RunState) error {
	role, ok := o.resolveOwner(ans.QuestionID, state)
	if !ok {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, ans.QuestionID)
	}
	spec, ok := o.specialists[role]
	if !ok {
		return fmt.Errorf("%w: no specialist for role %s", ErrQuestionNotFound, role)
	}
	previous := state.Result(role)
	if previous == nil {
		return fmt.Errorf("%w: no prior result for role %s", ErrQuestionNotFound, role)
	}

	// Ids from a previous run generation route by prefix but point at a
	// question this state never saw. Synthesize a placeholder entry so the
	// answer still reaches the owning specialist.
	if previous.Question(ans.QuestionID) == nil {
		o.log.Info("synthesizing placeholder for stale question id",
			zap.String("question_id", ans.QuestionID))
		previous.FollowUpQuestions = append(previous.FollowUpQuestions, assessment.FollowUpQuestion{
			ID:       ans.QuestionID,
			Question: "Follow-up question from a previous analysis round",
			Context:  "The original question text is no longer available; the answer is applied to the owning specialist's analysis.",
		})
	}

	updated := spec.ProcessFollowUpAnswer(ctx, input, ans.QuestionID, ans.Text, *previous)
	state.Results[role] = &updated
	state.MarkProcessed(ans.QuestionID)
	return nil
}

// resolveOwner finds the role owning a question id, first via the current
// outstanding list and then via the id prefix.
func (o *Orchestrator) resolveOwner(questionID string, state *RunState) (agent.Role, bool) {
	for _, q := range state.OutstandingQuestions() {
		if q.ID == questionID {
			return q.Role, true
		}
	}
	return agent.RoleFromQuestionID(questionID)
}

// SortAnswers flattens an id-to-answer map into a slice ordered by question
// id so batch processing is deterministic.
func SortAnswers(byID map[string]string) []Answer {
	out := make([]Answer, 0, len(byID))
	for id, text := range byID {
		out = append(out, Answer{QuestionID: id, Text: text})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}
