package assessment

import (
	"fmt"
	"strings"
)

// AssessmentInput is the immutable set of answers collected by the intake
// form. Company size, industry, tech stack maturity and data availability are
// required; the remaining fields may be left empty.
type AssessmentInput struct {
	CompanySize             string   `json:"companySize"`
	Industry                string   `json:"industry"`
	TechStackMaturity       string   `json:"techStackMaturity"`
	DataAvailability        []string `json:"dataAvailability"`
	BudgetRange             string   `json:"budgetRange,omitempty"`
	TimelineExpectations    string   `json:"timelineExpectations,omitempty"`
	TechnicalExpertiseLevel string   `json:"technicalExpertiseLevel,omitempty"`
	PreviousAIExperience    bool     `json:"previousAiExperience,omitempty"`
	MainBusinessChallenge   []string `json:"mainBusinessChallenge,omitempty"`
	PriorityArea            []string `json:"priorityArea,omitempty"`
}

var CompanySizes = []string{
	"1-10 employees",
	"11-50 employees",
	"51-200 employees",
	"201-1,000 employees",
	"1,001+ employees",
}

var Industries = []string{
	"Healthcare",
	"Finance & Banking",
	"Retail & E-commerce",
	"Manufacturing",
	"Logistics & Supply Chain",
	"Technology & Software",
	"Government & Public Sector",
	"Education",
	"Energy & Utilities",
	"Other",
}

var TechStackMaturityLevels = []string{
	"1 - No digital infrastructure (fully manual processes)",
	"2 - Basic (Some cloud tools, no AI usage)",
	"3 - Moderate (Using automation, but no AI models)",
	"4 - Advanced (Some AI models in production)",
	"5 - Highly mature (AI deeply integrated in operations)",
}

var DataAvailabilityOptions = []string{
	"We collect structured data (well-organized, databases, etc.)",
	"We collect unstructured data (documents, images, videos, etc.)",
	"We have real-time data streams (IoT, event-driven systems)",
	"We rely on third-party data providers",
	"We have little to no data collection",
}

var BudgetRanges = []string{
	"Less than $10,000",
	"$10,000 - $50,000",
	"$50,000 - $100,000",
	"$100,000 - $500,000",
	"More than $500,000",
}

var Timelines = []string{
	"0-3 months (immediate implementation)",
	"3-6 months",
	"6-12 months",
	"12+ months (long-term plan)",
}

var TechnicalExpertiseLevels = []string{
	"1 - No in-house tech expertise",
	"2 - Some IT staff, but no AI/ML experience",
	"3 - Software team with basic AI/ML knowledge",
	"4 - AI specialists available, but limited experience",
	"5 - Strong AI/ML team with advanced capabilities",
}

var MainBusinessChallenges = []string{
	"Reducing operational costs",
	"Increasing revenue and sales",
	"Improving customer experience",
	"Enhancing decision-making with AI insights",
	"Optimizing supply chain and logistics",
	"Automating repetitive tasks",
	"Other",
}

var PriorityAreas = []string{
	"Data-driven decision-making",
	"Process automation",
	"Customer service automation (e.g., chatbots, voice assistants)",
	"Predictive analytics (forecasting trends, risk assessment)",
	"AI-powered product innovation",
	"Other",
}

// Validate checks required fields and rejects labels that are not part of the
// form definitions.
func (in *AssessmentInput) Validate() error {
	if in == nil {
		return fmt.Errorf("assessment input is nil")
	}
	if err := requireOneOf("companySize", in.CompanySize, CompanySizes); err != nil {
		return err
	}
	if err := requireOneOf("industry", in.Industry, Industries); err != nil {
		return err
	}
	if err := requireOneOf("techStackMaturity", in.TechStackMaturity, TechStackMaturityLevels); err != nil {
		return err
	}
	if len(in.DataAvailability) == 0 {
		return fmt.Errorf("dataAvailability is required")
	}
	if err := allOneOf("dataAvailability", in.DataAvailability, DataAvailabilityOptions); err != nil {
		return err
	}
	if err := optionalOneOf("budgetRange", in.BudgetRange, BudgetRanges); err != nil {
		return err
	}
	if err := optionalOneOf("timelineExpectations", in.TimelineExpectations, Timelines); err != nil {
		return err
	}
	if err := optionalOneOf("technicalExpertiseLevel", in.TechnicalExpertiseLevel, TechnicalExpertiseLevels); err != nil {
		return err
	}
	if err := allOneOf("mainBusinessChallenge", in.MainBusinessChallenge, MainBusinessChallenges); err != nil {
		return err
	}
	return allOneOf("priorityArea", in.PriorityArea, PriorityAreas)
}

func requireOneOf(field, value string, allowed []string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return optionalOneOf(field, value, allowed)
}

func optionalOneOf(field, value string, allowed []string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	return fmt.Errorf("%s: unknown option %q", field, value)
}

func allOneOf(field string, values, allowed []string) error {
	for _, v := range values {
		if err := optionalOneOf(field, v, allowed); err != nil {
			return err
		}
	}
	return nil
}
