package schema

import (
	"errors"
	"regexp"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"

	"github.com/google/uuid"
)

var rePhone = regexp.MustCompile(`^[0-9]{10}$`)

var rePhoneErr = errors.New("invalid phone number")

type Company struct{ ent.Schema }

func (Company) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "companies"},
	}
}

func (Company) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.String("name").NotEmpty(),
		field.String("owner_name").NotEmpty(),
		field.String("phone").NotEmpty().
			Validate(func(s string) error {
				if rePhone.MatchString(s) {
					return nil
				}
				return rePhoneErr
			}),
		field.String("email").Optional().Nillable(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Company) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("trucks", Truck.Type),
		edge.To("drivers", Driverx.Type),
		edge.To("assignments", Assignment.Type),
	}
}
