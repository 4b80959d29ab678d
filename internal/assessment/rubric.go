package assessment

import "math"

// The deterministic rubric is an offline estimator. The LLM-aggregated report
// is authoritative; this one backs the create procedure's precomputed-score
// hint and the aggregation failure path.

// CategoryWeights weight each field's 1-5 score in the rubric total.
var CategoryWeights = map[string]float64{
	"companySize":             0.05,
	"industry":                0.05,
	"techStackMaturity":       0.15,
	"dataAvailability":        0.20,
	"budgetRange":             0.10,
	"timelineExpectations":    0.05,
	"technicalExpertiseLevel": 0.15,
	"previousAiExperience":    0.10,
	"mainBusinessChallenge":   0.05,
	"priorityArea":            0.10,
}

var industryScores = map[string]int{
	"Healthcare":                 4,
	"Finance & Banking":          4,
	"Retail & E-commerce":        3,
	"Manufacturing":              3,
	"Logistics & Supply Chain":   3,
	"Technology & Software":      5,
	"Government & Public Sector": 2,
	"Education":                  3,
	"Energy & Utilities":         3,
	"Other":                      3,
}

var timelineScores = map[string]int{
	"0-3 months (immediate implementation)": 1,
	"3-6 months":                            3,
	"6-12 months":                           4,
	"12+ months (long-term plan)":           5,
}

// RubricResult is the deterministic estimate.
type RubricResult struct {
	Score          int    `json:"score"`
	ReadinessLevel string `json:"readinessLevel"`
	Description    string `json:"description"`
}

// ScoreRubric computes the weighted rubric score for an input. Missing
// optional fields score the floor for their category so the result stays
// deterministic for partial inputs.
func ScoreRubric(in AssessmentInput) RubricResult {
	total := 0.0
	total += CategoryWeights["companySize"] * ratio(ordinalScore(in.CompanySize, CompanySizes))
	total += CategoryWeights["industry"] * ratio(lookupScore(in.Industry, industryScores))
	total += CategoryWeights["techStackMaturity"] * ratio(ordinalScore(in.TechStackMaturity, TechStackMaturityLevels))
	total += CategoryWeights["dataAvailability"] * ratio(selectionScore(in.DataAvailability, DataAvailabilityOptions))
	total += CategoryWeights["budgetRange"] * ratio(ordinalScore(in.BudgetRange, BudgetRanges))
	total += CategoryWeights["timelineExpectations"] * ratio(lookupScore(in.TimelineExpectations, timelineScores))
	total += CategoryWeights["technicalExpertiseLevel"] * ratio(ordinalScore(in.TechnicalExpertiseLevel, TechnicalExpertiseLevels))
	total += CategoryWeights["previousAiExperience"] * ratio(boolScore(in.PreviousAIExperience))
	total += CategoryWeights["mainBusinessChallenge"] * ratio(selectionScore(in.MainBusinessChallenge, MainBusinessChallenges))
	total += CategoryWeights["priorityArea"] * ratio(selectionScore(in.PriorityArea, PriorityAreas))

	score := int(math.Round(total * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	band := BandForScore(score)
	return RubricResult{Score: score, ReadinessLevel: band.Level, Description: band.Description}
}

func ratio(score int) float64 { return float64(score) / 5.0 }

// ordinalScore maps a label to its 1-based position in the option list.
func ordinalScore(value string, options []string) int {
	for i, o := range options {
		if o == value {
			if i >= 4 {
				return 5
			}
			return i + 1
		}
	}
	return 1
}

func lookupScore(value string, scores map[string]int) int {
	if s, ok := scores[value]; ok {
		return s
	}
	return 1
}

// selectionScore scales the number of selected options to 1-5.
func selectionScore(selected, options []string) int {
	if len(options) == 0 || len(selected) == 0 {
		return 1
	}
	s := int(math.Ceil(float64(len(selected)) / float64(len(options)) * 5))
	if s < 1 {
		s = 1
	}
	if s > 5 {
		s = 5
	}
	return s
}

func boolScore(b bool) int {
	if b {
		return 5
	}
	return 2
}
