package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Assessment holds one submitted assessment keyed by input fingerprint.
type Assessment struct {
	ent.Schema
}

func (Assessment) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Unique().
			Immutable(),
		field.String("fingerprint").
			NotEmpty().
			Unique(),
		field.JSON("input", map[string]any{}),
		field.JSON("results", map[string]any{}).
			Optional(),
		field.Time("created_at").
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Assessment) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("report", AIReport.Type).
			Unique(),
	}
}

func (Assessment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("fingerprint").Unique(),
	}
}
