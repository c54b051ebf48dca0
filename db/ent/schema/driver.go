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

type Driver struct{ ent.Schema }

func (Driver) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "drivers"},
	}
}

func (Driver) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("company_id", uuid.UUID{}),
		field.String("first_name").NotEmpty(),
		field.String("last_name").NotEmpty(),
		field.String("phone").NotEmpty().
			Validate(func(s string) error {
				if rePhone.MatchString(s) {
					return nil
				}
				return rePhoneErr
			}),
		field.JSON("license", &entity.DocumentRecord{}).
			Optional().
			SchemaType(map[string]string{dialect.Postgres: "jsonb"}),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Driver) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY drivers -> ONE company (FK: drivers.company_id)
		edge.From("company", Company.Type).
			Ref("drivers").
			Field("company_id").
			Required().
			Unique(),
		// ONE driver -> MANY assignments
		edge.To("assignments", Assignment.Type),
	}
}
