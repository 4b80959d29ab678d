package orchestrator

import (
	"strings"
	"unicode"

	"readiness/internal/agent"
	"readiness/internal/assessment"
)

// wordOverlapThreshold is the Jaccard word-overlap ratio above which two
// questions count as duplicates.
const wordOverlapThreshold = 0.7

// RoleQuestion is a follow-up question tagged with its owning role.
type RoleQuestion struct {
	assessment.FollowUpQuestion
	Role agent.Role `json:"agentType"`
}

// OutstandingQuestions returns the deduplicated, unanswered, unprocessed
// follow-up questions across all specialists. Roles are walked in canonical
// order, so when two near-identical questions collide the earlier role's
// survives, deterministically.
func (s *RunState) OutstandingQuestions() []RoleQuestion {
	var out []RoleQuestion
	var kept []string
	for _, role := range agent.Roles() {
		r := s.Result(role)
		if r == nil {
			continue
		}
		for _, q := range r.FollowUpQuestions {
			if s.Processed[q.ID] || q.Answered {
				continue
			}
			norm := normalizeQuestionText(q.Question)
			if norm == "" || isDuplicate(norm, kept) {
				continue
			}
			kept = append(kept, norm)
			out = append(out, RoleQuestion{FollowUpQuestion: q, Role: role})
		}
	}
	return out
}

// normalizeQuestionText lowercases, strips everything but letters and digits
// and collapses whitespace.
func normalizeQuestionText(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isDuplicate(norm string, kept []string) bool {
	for _, k := range kept {
		if strings.Contains(k, norm) || strings.Contains(norm, k) {
			return true
		}
		if wordOverlap(norm, k) >= wordOverlapThreshold {
			return true
		}
	}
	return false
}

// wordOverlap is the ratio of shared unique words to the union of unique
// words across both texts.
func wordOverlap(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(wa))
	for _, w := range wa {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wb))
	for _, w := range wb {
		setB[w] = struct{}{}
	}
	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}
