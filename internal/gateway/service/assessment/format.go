package assessment

import (
	"fmt"
	"strings"

	"readiness/internal/agent"
	"readiness/internal/assessment"
	"readiness/internal/orchestrator"
)

// formatReport renders the aggregated report plus per-specialist findings as
// markdown. This is the text that gets archived and returned to callers.
func formatReport(input assessment.AssessmentInput, state *orchestrator.RunState) string {
	var b strings.Builder
	b.WriteString("# AI Readiness Report\n\n")

	if report := state.Report; report != nil {
		fmt.Fprintf(&b, "**Overall Score:** %d/100\n\n", report.OverallScore)
		fmt.Fprintf(&b, "**Readiness Level:** %s\n\n", report.ReadinessLevel)
		if report.Description != "" {
			b.WriteString(report.Description)
			b.WriteString("\n\n")
		}
		if !report.IsError() {
			b.WriteString("## Pillar Scores\n\n")
			fmt.Fprintf(&b, "- Technology Readiness: %d/%d\n", report.Pillars.TechnologyReadiness, assessment.MaxPillarScore)
			fmt.Fprintf(&b, "- Leadership Alignment: %d/%d\n", report.Pillars.LeadershipAlignment, assessment.MaxPillarScore)
			fmt.Fprintf(&b, "- Actionable Strategy: %d/%d\n", report.Pillars.ActionableStrategy, assessment.MaxPillarScore)
			fmt.Fprintf(&b, "- Systems Integration: %d/%d\n\n", report.Pillars.SystemsIntegration, assessment.MaxPillarScore)
		}
		if report.Recommendations != "" {
			b.WriteString("## Recommendations\n\n")
			b.WriteString(report.Recommendations)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## Specialist Findings\n\n")
	for _, role := range agent.Roles() {
		r := state.Result(role)
		if r == nil {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", role.DisplayName())
		if r.Insights != "" {
			b.WriteString(r.Insights)
			b.WriteString("\n\n")
		}
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
		if len(r.Recommendations) > 0 {
			b.WriteString("\n")
		}
		for _, q := range r.AnsweredQuestions() {
			fmt.Fprintf(&b, "**Q:** %s\n\n**A:** %s\n\n", q.Question, q.Answer)
		}
	}

	if len(input.MainBusinessChallenge) > 0 {
		fmt.Fprintf(&b, "---\n\nBusiness challenges considered: %s\n", strings.Join(input.MainBusinessChallenge, "; "))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
