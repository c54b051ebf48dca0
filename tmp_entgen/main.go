package main

import (
	"log"

	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
)

func main() {
	err := entc.Generate(
		"./db/ent/schema_entgen",
		&gen.Config{
			Target:  "gen/ent",
			Package: "github.com/fleetdocs/fleetdocs/gen/ent",
			Schema:  "github.com/fleetdocs/fleetdoc./db/ent/schema_entgen",
		},
	)
	if err != nil {
		log.Fatal(err)
	}
}