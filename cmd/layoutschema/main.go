// Command layoutschema emits the JSON Schema for wall layout files, so map
// editors can validate a layout before the server loads it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/andronedrei/arena-battle/internal/sim"
)

func main() {
	out := flag.String("out", "", "output file (empty writes to stdout)")
	flag.Parse()

	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&sim.Layout{})
	schema.Title = "Arena wall layout"
	schema.Description = "Static wall grid for one arena: cell size, world dimensions, and solid cells given as rects or individual cells."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
}
