package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// AIReport holds the aggregated readiness report for one assessment.
type AIReport struct {
	ent.Schema
}

func (AIReport) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.Int("overall_score").
			NonNegative(),
		field.String("readiness_level").
			NotEmpty(),
		field.Text("description").
			Default(""),
		field.JSON("pillars", map[string]int{}),
		field.Text("recommendations").
			Default(""),
		field.Text("formatted").
			Default(""),
		field.Time("created_at").
			Default(time.Now),
	}
}

func (AIReport) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("assessment", Assessment.Type).
			Ref("report").
			Unique(),
	}
}
