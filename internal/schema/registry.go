// Package schema holds the JSON schemas of the records the pipeline writes
// and validates records against them.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Schema is one record schema.
type Schema struct {
	Name   string // record name (e.g., "Article")
	Source string // JSON schema document
	Order  int    // listing order
}

// registry lists the known record schemas.
var registry = []Schema{
	{Name: "Article", Order: 1},
	{Name: "See", Order: 2},
}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// All returns all schemas in order.
// Schemas are loaded from embedded .schema.json files.
func All() ([]Schema, error) {
	schemas := make([]Schema, len(registry))
	copy(schemas, registry)

	for i := range schemas {
		content, err := schemaFS.ReadFile(filename(schemas[i].Name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", schemas[i].Name, err)
		}
		schemas[i].Source = string(content)
	}

	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Order < schemas[j].Order
	})
	return schemas, nil
}

// Get returns a single schema by name.
func Get(name string) (*Schema, error) {
	for _, s := range registry {
		if s.Name == name {
			content, err := schemaFS.ReadFile(filename(s.Name))
			if err != nil {
				return nil, fmt.Errorf("failed to read schema %s: %w", s.Name, err)
			}
			return &Schema{Name: s.Name, Source: string(content), Order: s.Order}, nil
		}
	}
	return nil, fmt.Errorf("schema not found: %s", name)
}

func filename(name string) string {
	return fmt.Sprintf("schemas/%s.schema.json", strings.ToLower(name))
}

func compileAll() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		schemas, err := All()
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		for _, s := range schemas {
			if err := compiler.AddResource(filename(s.Name), strings.NewReader(s.Source)); err != nil {
				compileErr = fmt.Errorf("failed to load schema %s: %w", s.Name, err)
				return
			}
		}
		compiled = make(map[string]*jsonschema.Schema, len(schemas))
		for _, s := range schemas {
			sch, err := compiler.Compile(filename(s.Name))
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", s.Name, err)
				return
			}
			compiled[s.Name] = sch
		}
	})
	return compiled, compileErr
}

// Validate checks a record against the named schema. The record is
// round-tripped through encoding/json so that struct tags apply.
func Validate(name string, record any) error {
	schemas, err := compileAll()
	if err != nil {
		return err
	}
	sch, ok := schemas[name]
	if !ok {
		return fmt.Errorf("schema not found: %s", name)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s for validation: %w", name, err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode %s for validation: %w", name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%s does not match schema: %w", name, err)
	}
	return nil
}
