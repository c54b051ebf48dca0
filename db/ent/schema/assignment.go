package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/db/ent/schema/utils"
)

type Assignment struct{ ent.Schema }

func (Assignment) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "assignments"},
	}
}

func (Assignment) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("company_id", uuid.UUID{}),
		field.UUID("truck_id", uuid.UUID{}),
		field.UUID("driver_id", uuid.UUID{}),
		field.String("status").
			Default(string(constants.AssignmentActive)).
			Validate(utils.EnumValidator(constants.AssignmentStatuses...)),
		field.Time("assigned_at").Default(time.Now).Immutable(),
		field.Time("completed_at").Optional().Nillable(),
	}
}

func (Assignment) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY assignments -> ONE company (FK: assignments.company_id)
		edge.From("company", Company.Type).
			Ref("assignments").
			Field("company_id").
			Required().
			Unique(),
		// MANY assignments -> ONE truck (FK: assignments.truck_id)
		edge.From("truck", Truck.Type).
			Ref("assignments").
			Field("truck_id").
			Required().
			Unique(),
		// MANY assignments -> ONE driver (FK: assignments.driver_id)
		edge.From("driver", Driver.Type).
			Ref("assignments").
			Field("driver_id").
			Required().
			Unique(),
	}
}

func (Assignment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status", "assigned_at"),
	}
}
