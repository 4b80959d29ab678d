package agent

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Generated payloads are validated against a schema before unmarshalling so a
// structurally wrong response degrades the same way a parse error does.

const specialistResultSchema = `{
  "type": "object",
  "required": ["insights", "score", "recommendations"],
  "properties": {
    "insights": {"type": "string"},
    "score": {"type": "integer"},
    "recommendations": {"type": "array", "items": {"type": "string"}},
    "followUpQuestions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question"],
        "properties": {
          "question": {"type": "string"},
          "context": {"type": "string"}
        }
      }
    }
  }
}`

const reportSchema = `{
  "type": "object",
  "required": ["overallScore", "readinessLevel", "description", "pillars", "recommendations"],
  "properties": {
    "overallScore": {"type": "integer"},
    "readinessLevel": {"type": "string"},
    "description": {"type": "string"},
    "pillars": {
      "type": "object",
      "required": ["technologyReadiness", "leadershipAlignment", "actionableStrategy", "systemsIntegration"],
      "properties": {
        "technologyReadiness": {"type": "integer"},
        "leadershipAlignment": {"type": "integer"},
        "actionableStrategy": {"type": "integer"},
        "systemsIntegration": {"type": "integer"}
      }
    },
    "recommendations": {"type": "string"}
  }
}`

var (
	specialistSchemaLoader = gojsonschema.NewStringLoader(specialistResultSchema)
	reportSchemaLoader     = gojsonschema.NewStringLoader(reportSchema)
)

func validatePayload(loader gojsonschema.JSONLoader, payload string) error {
	result, err := gojsonschema.Validate(loader, gojsonschema.NewStringLoader(payload))
	if err != nil {
		return err
	}
	if !result.Valid() {
		if errs := result.Errors(); len(errs) > 0 {
			return fmt.Errorf("payload schema: %s", errs[0].String())
		}
		return fmt.Errorf("payload schema: invalid")
	}
	return nil
}
