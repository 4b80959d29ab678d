package agent

import (
	"context"

	"go.uber.org/zap"

	"readiness/internal/assessment"
	"readiness/internal/jsonutil"
	"readiness/internal/llmclient"
)

const reportGeneratorPrompt = `You are an expert Report Generator specializing in AI readiness assessments.
Your task is to compile the findings from multiple AI agents into a comprehensive, structured report.

Based on the overall score, determine the readiness level:
- 0-20: "Early Stage" - Limited AI readiness with significant gaps
- 21-40: "Developing" - Beginning to build AI capabilities but with major challenges
- 41-60: "Advancing" - Moderate AI readiness with some key elements in place
- 61-80: "Established" - Strong foundation for AI adoption with minor gaps
- 81-100: "Leading" - Excellent AI readiness with robust capabilities

The four pillar scores MUST sum exactly to the overall score.

Format your response as a JSON object with the following structure:
{
  "overallScore": 0-100,
  "readinessLevel": "Early Stage|Developing|Advancing|Established|Leading",
  "description": "A detailed description of the company's overall AI readiness",
  "pillars": {
    "technologyReadiness": 0-25,
    "leadershipAlignment": 0-25,
    "actionableStrategy": 0-25,
    "systemsIntegration": 0-25
  },
  "recommendations": "Comprehensive, structured recommendations based on all agent findings"
}

` + jsonOnlyRule

// ReportGenerator aggregates the three specialist results into the final
// readiness report. Unlike the specialists it reports an explicit Error level
// when generation fails, since there is nothing downstream to degrade into.
type ReportGenerator struct {
	llm llmclient.Client
	log *zap.Logger
}

func NewReportGenerator(llm llmclient.Client, log *zap.Logger) *ReportGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportGenerator{
		llm: llmclient.NewInstrumented(llm, "report-generator"),
		log: log.With(zap.String("agent", "report-generator")),
	}
}

func (g *ReportGenerator) Generate(ctx context.Context, input assessment.AssessmentInput, results map[Role]*assessment.SpecialistResult) assessment.Report {
	text, err := g.llm.Generate(ctx, []llmclient.Message{
		llmclient.System(reportGeneratorPrompt),
		llmclient.User(aggregationUserPrompt(input, results)),
	})
	if err != nil {
		g.log.Error("report generation failed", zap.Error(err))
		return ErrorReport("Error generating AI readiness report")
	}

	payload := jsonutil.ExtractJSONPayload(text)
	if err := validatePayload(reportSchemaLoader, payload); err != nil {
		g.log.Error("report schema validation failed", zap.Error(err), zap.String("raw", text))
		return ErrorReport("Error generating AI readiness report")
	}
	var report assessment.Report
	if err := jsonutil.UnmarshalFlex([]byte(payload), &report); err != nil {
		g.log.Error("report parse failed", zap.Error(err), zap.String("raw", text))
		return ErrorReport("Error generating AI readiness report")
	}

	report.Pillars.TechnologyReadiness = assessment.ClampScore(report.Pillars.TechnologyReadiness)
	report.Pillars.LeadershipAlignment = assessment.ClampScore(report.Pillars.LeadershipAlignment)
	report.Pillars.ActionableStrategy = assessment.ClampScore(report.Pillars.ActionableStrategy)
	report.Pillars.SystemsIntegration = assessment.ClampScore(report.Pillars.SystemsIntegration)

	if sum := report.Pillars.Sum(); report.OverallScore != sum {
		g.log.Warn("pillar sum mismatch, rebalancing overall score",
			zap.Int("overall", report.OverallScore), zap.Int("pillar_sum", sum))
		report.OverallScore = sum
	}
	if !assessment.ValidLevel(report.ReadinessLevel) {
		band := assessment.BandForScore(report.OverallScore)
		report.ReadinessLevel = band.Level
		if report.Description == "" {
			report.Description = band.Description
		}
	}
	return report
}

// ErrorReport is the zero-score report returned when aggregation itself fails.
func ErrorReport(message string) assessment.Report {
	return assessment.Report{
		OverallScore:    0,
		ReadinessLevel:  assessment.LevelError,
		Description:     message,
		Recommendations: "Unable to generate recommendations due to an error",
	}
}
