package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func escapeSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("escape.schema.json", escapeSchemaJSON)
	})
	return schema, schemaErr
}

// ValidateYAML checks a config document against the embedded JSON schema.
// Unknown keys, wrong types and out-of-range values are rejected; missing
// keys are allowed and fall back to defaults.
func ValidateYAML(data []byte) error {
	s, err := escapeSchema()
	if err != nil {
		return fmt.Errorf("config: compile schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so the validator sees JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config: convert to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("config: convert to json: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
