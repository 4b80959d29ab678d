package assessment

import "strings"

// SpecialistResult is the partial analysis returned by one specialist role.
// Score is bounded 0-25 and counts toward the pillar(s) that role owns.
type SpecialistResult struct {
	Insights          string             `json:"insights"`
	Score             int                `json:"score"`
	Recommendations   []string           `json:"recommendations"`
	FollowUpQuestions []FollowUpQuestion `json:"followUpQuestions,omitempty"`
}

// FollowUpQuestion is a clarifying question a specialist may pose once per
// run. IDs follow the "<role>-q<index>" convention and stay stable across
// revisions of the owning specialist's result.
type FollowUpQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Context  string `json:"context"`
	Answered bool   `json:"answered"`
	Answer   string `json:"answer,omitempty"`
}

// Question returns the follow-up question with the given id, or nil.
func (r *SpecialistResult) Question(id string) *FollowUpQuestion {
	if r == nil {
		return nil
	}
	for i := range r.FollowUpQuestions {
		if r.FollowUpQuestions[i].ID == id {
			return &r.FollowUpQuestions[i]
		}
	}
	return nil
}

// AnsweredQuestions returns the answered questions of the result, skipping
// any marked answered without an answer text (which the reconciler never
// produces, but stored data is not trusted).
func (r *SpecialistResult) AnsweredQuestions() []FollowUpQuestion {
	if r == nil {
		return nil
	}
	var out []FollowUpQuestion
	for _, q := range r.FollowUpQuestions {
		if q.Answered && strings.TrimSpace(q.Answer) != "" {
			out = append(out, q)
		}
	}
	return out
}

// ClampScore bounds a specialist score into the 0-25 pillar range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxPillarScore {
		return MaxPillarScore
	}
	return score
}
