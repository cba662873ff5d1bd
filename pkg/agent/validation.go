package agent

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sv "github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaValidator checks values against one compiled JSON Schema.
type SchemaValidator struct {
	raw []byte
	sch *sv.Schema
}

// CompileSchema compiles a JSON Schema document.
func CompileSchema(schema []byte) (*SchemaValidator, error) {
	doc, err := sv.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return nil, fmt.Errorf("agent: schema: %w", err)
	}
	c := sv.NewCompiler()
	if err := c.AddResource("mem://result.json", doc); err != nil {
		return nil, fmt.Errorf("agent: schema: %w", err)
	}
	sch, err := c.Compile("mem://result.json")
	if err != nil {
		return nil, fmt.Errorf("agent: schema: %w", err)
	}
	return &SchemaValidator{raw: schema, sch: sch}, nil
}

// Validate checks data's JSON form against the schema.
func (v *SchemaValidator) Validate(data any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	inst, err := sv.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return err
	}
	return v.sch.Validate(inst)
}

// Raw returns the schema document.
func (v *SchemaValidator) Raw() json.RawMessage { return json.RawMessage(v.raw) }

// SchemaFor derives and compiles the result schema of T. Struct fields are
// required unless tagged omitempty, unknown properties are rejected, and
// slices and maps must be non-null.
func SchemaFor[T any]() (*SchemaValidator, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("agent: infer schema: %w", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return CompileSchema(b)
}

