package orchestrator

import (
	"readiness/internal/agent"
	"readiness/internal/assessment"
)

// RunState is the working state of one assessment run: per-role results, the
// set of processed question ids and the latest aggregated report. It is owned
// by the caller; the orchestrator never retains a reference between calls and
// access is not synchronized here.
type RunState struct {
	Results   map[agent.Role]*assessment.SpecialistResult
	Processed map[string]bool
	Report    *assessment.Report
}

func NewRunState() *RunState {
	return &RunState{
		Results:   make(map[agent.Role]*assessment.SpecialistResult),
		Processed: make(map[string]bool),
	}
}

// Result returns the stored result for a role, or nil.
func (s *RunState) Result(role agent.Role) *assessment.SpecialistResult {
	if s == nil {
		return nil
	}
	return s.Results[role]
}

// MarkProcessed records that a question id has been consumed. Processed ids
// never reappear in the outstanding list.
func (s *RunState) MarkProcessed(id string) {
	s.Processed[id] = true
}
