package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/internal/entity"
)

type Truck struct{ ent.Schema }

func (Truck) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "trucks"},
	}
}

func (Truck) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("company_id", uuid.UUID{}),
		// Canonical registration number: no spaces or hyphens, upper-case.
		field.String("truck_number").NotEmpty().Unique(),
		// One verified record per document slot, keyed by document type.
		field.JSON("documents", map[string]entity.DocumentRecord{}).
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.JSON("emi", &entity.EMISchedule{}).
			Optional().
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Truck) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY trucks -> ONE company (FK: trucks.company_id)
		edge.From("company", Company.Type).
			Ref("trucks").
			Field("company_id").
			Required().
			Unique(),
		// ONE truck -> MANY assignments
		edge.To("assignments", Assignment.Type),
	}
}
