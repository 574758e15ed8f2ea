package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"sever-and-wield/server/anatomy"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("catalog-schema: missing -out path")
	}

	schema, err := buildSchema()
	if err != nil {
		log.Fatalf("catalog-schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("catalog-schema: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("catalog-schema: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("catalog-schema: write schema: %v", err)
	}
}

func buildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	templateSchema := reflector.ReflectFromType(reflect.TypeOf(anatomy.TemplateDocument{}))
	if templateSchema == nil {
		return nil, fmt.Errorf("failed to reflect template schema")
	}
	templateSchema.Version = ""
	templateSchema.Title = "Anatomy Template"
	templateSchema.Description = "Designer-authored body plan: a list of parts with health ratios and capability tags."

	arraySchema := &jsonschema.Schema{
		Type:        "array",
		Title:       "Template Collection",
		Description: "Multiple anatomy templates expressed as an array of documents.",
		Items:       templateSchema,
	}

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Sever & Wield Anatomy Templates",
		Description: "Body plan documents consumed by the anatomy loader.",
		OneOf: []*jsonschema.Schema{
			templateSchema,
			arraySchema,
		},
	}

	return root, nil
}
