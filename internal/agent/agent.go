package agent

import (
	"context"
	"fmt"
	"strings"

	"readiness/internal/assessment"
)

// Role identifies one specialist analyzer. Role strings double as the prefix
// of follow-up question ids ("<role>-q<index>").
type Role string

const (
	RoleDataAnalyst         Role = "data-analyst"
	RoleStrategyAdvisor     Role = "strategy-advisor"
	RoleTechnicalConsultant Role = "technical-consultant"
)

// Roles returns the specialist roles in their canonical order. Everything
// that iterates over results follows this order so output is deterministic.
func Roles() []Role {
	return []Role{RoleDataAnalyst, RoleStrategyAdvisor, RoleTechnicalConsultant}
}

// DisplayName is the human-readable role name used in prompts and degraded
// results.
func (r Role) DisplayName() string {
	switch r {
	case RoleDataAnalyst:
		return "Data Analyst"
	case RoleStrategyAdvisor:
		return "Strategy Advisor"
	case RoleTechnicalConsultant:
		return "Technical Consultant"
	default:
		return string(r)
	}
}

// RoleFromQuestionID recovers the owning role from a question id of the form
// "<role>-q<index>". Used as a routing fallback for ids that were valid in a
// prior run generation.
func RoleFromQuestionID(id string) (Role, bool) {
	id = strings.TrimSpace(id)
	for _, r := range Roles() {
		if strings.HasPrefix(id, string(r)+"-q") {
			return r, true
		}
	}
	return "", false
}

// QuestionID builds the stable id for the index-th question of a role.
func QuestionID(role Role, index int) string {
	return fmt.Sprintf("%s-q%d", role, index)
}

// Specialist turns assessment input into a bounded partial result and can
// revise it after a follow-up answer. Implementations never fail the run:
// generation or parse errors degrade to a zero-score result.
type Specialist interface {
	Role() Role
	Analyze(ctx context.Context, input assessment.AssessmentInput) assessment.SpecialistResult
	ProcessFollowUpAnswer(ctx context.Context, input assessment.AssessmentInput, questionID, answer string, previous assessment.SpecialistResult) assessment.SpecialistResult
}

// DegradedResult is the substitute for a specialist whose generation or parse
// failed. Fatal to this specialist, non-fatal to the run.
func DegradedResult(role Role) assessment.SpecialistResult {
	name := role.DisplayName()
	return assessment.SpecialistResult{
		Insights: fmt.Sprintf("Error in %s analysis", name),
		Score:    0,
		Recommendations: []string{
			fmt.Sprintf("The %s encountered an error during analysis", name),
		},
	}
}
