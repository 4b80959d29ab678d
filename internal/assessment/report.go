package assessment

// MaxPillarScore is the ceiling of one pillar sub-score.
const MaxPillarScore = 25

// Pillar names as they appear in reports.
const (
	PillarTechnologyReadiness = "technologyReadiness"
	PillarLeadershipAlignment = "leadershipAlignment"
	PillarActionableStrategy  = "actionableStrategy"
	PillarSystemsIntegration  = "systemsIntegration"
)

// LevelError marks a report produced by the aggregation failure path.
const LevelError = "Error"

// Pillars holds the four sub-scores. They must sum to the report's overall
// score for any non-error report.
type Pillars struct {
	TechnologyReadiness int `json:"technologyReadiness"`
	LeadershipAlignment int `json:"leadershipAlignment"`
	ActionableStrategy  int `json:"actionableStrategy"`
	SystemsIntegration  int `json:"systemsIntegration"`
}

// Sum returns the pillar total.
func (p Pillars) Sum() int {
	return p.TechnologyReadiness + p.LeadershipAlignment + p.ActionableStrategy + p.SystemsIntegration
}

// Report is the aggregated readiness report. Reports are superseded, never
// mutated: every aggregation call builds a fresh one.
type Report struct {
	OverallScore    int     `json:"overallScore"`
	ReadinessLevel  string  `json:"readinessLevel"`
	Description     string  `json:"description"`
	Pillars         Pillars `json:"pillars"`
	Recommendations string  `json:"recommendations"`
}

// IsError reports whether this is the degraded aggregation-failure report.
func (r *Report) IsError() bool {
	return r != nil && r.ReadinessLevel == LevelError
}

// ReadinessBand is one of the five ordered score bands.
type ReadinessBand struct {
	Min         int
	Max         int
	Level       string
	Description string
}

// ReadinessBands are the five bands the aggregator classifies into.
var ReadinessBands = []ReadinessBand{
	{0, 20, "Early Stage", "Limited AI readiness with significant gaps across all pillars."},
	{21, 40, "Developing", "Beginning to build AI capabilities but with major challenges to address."},
	{41, 60, "Advancing", "Moderate AI readiness with some key elements in place and others needing development."},
	{61, 80, "Established", "Strong foundation for AI adoption with only minor gaps to address."},
	{81, 100, "Leading", "Excellent AI readiness with robust capabilities across all pillars."},
}

// BandForScore classifies an overall score into its readiness band.
// Scores outside 0-100 are clamped into range first.
func BandForScore(score int) ReadinessBand {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	for _, b := range ReadinessBands {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return ReadinessBands[len(ReadinessBands)-1]
}

// ValidLevel reports whether level is one of the five defined bands.
func ValidLevel(level string) bool {
	for _, b := range ReadinessBands {
		if b.Level == level {
			return true
		}
	}
	return false
}
