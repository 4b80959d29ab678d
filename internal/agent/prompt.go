package agent

import (
	"bytes"
	"fmt"
	"strings"

	"readiness/internal/assessment"
	"readiness/internal/jsonutil"
)

// Prompts are assembled from labeled sections so every agent call has the
// same shape: instructions in the system message, data blocks in the user
// message.

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}

func formatJSON(v any) string {
	b, err := jsonutil.MarshalIndentNoEscape(v, "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// analysisUserPrompt embeds the raw assessment input.
func analysisUserPrompt(input assessment.AssessmentInput) string {
	var buf bytes.Buffer
	buf.WriteString("Please analyze the following company assessment data:\n\n")
	writeSection(&buf, "ASSESSMENT", formatJSON(input))
	return strings.TrimSpace(buf.String())
}

// followUpUserPrompt embeds the original input, the previous analysis and the
// answered question so the revision call has full context.
func followUpUserPrompt(input assessment.AssessmentInput, previous assessment.SpecialistResult, q assessment.FollowUpQuestion, answer string) string {
	var buf bytes.Buffer
	writeSection(&buf, "ASSESSMENT", formatJSON(input))
	writeSection(&buf, "PREVIOUS_ANALYSIS", formatJSON(previous))
	writeSection(&buf, "FOLLOW_UP", fmt.Sprintf("Question: %s\nContext: %s\nUser's answer: %s", q.Question, q.Context, answer))
	buf.WriteString("Please provide an updated analysis based on this additional information.")
	return buf.String()
}

// aggregationUserPrompt embeds the input and all three specialist findings.
// When any follow-up question was answered this run, a dedicated section
// enumerates every question/context/answer triple across all specialists.
func aggregationUserPrompt(input assessment.AssessmentInput, results map[Role]*assessment.SpecialistResult) string {
	var buf bytes.Buffer
	buf.WriteString("Please generate a comprehensive AI readiness report based on the following:\n\n")
	writeSection(&buf, "ASSESSMENT", formatJSON(input))
	for _, role := range Roles() {
		r := results[role]
		if r == nil {
			continue
		}
		title := strings.ToUpper(strings.ReplaceAll(string(role), "-", "_")) + "_FINDINGS"
		writeSection(&buf, title, formatJSON(r))
	}
	if answered := answeredSection(results); answered != "" {
		writeSection(&buf, "ANSWERED_FOLLOW_UP_QUESTIONS", answered)
		buf.WriteString("Every answered question above must be addressed in the narrative, not only the latest one.\n")
	}
	return strings.TrimSpace(buf.String())
}

func answeredSection(results map[Role]*assessment.SpecialistResult) string {
	var buf strings.Builder
	for _, role := range Roles() {
		r := results[role]
		if r == nil {
			continue
		}
		for _, q := range r.AnsweredQuestions() {
			fmt.Fprintf(&buf, "- [%s] Question: %s\n  Context: %s\n  Answer: %s\n", role.DisplayName(), q.Question, q.Context, q.Answer)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}
