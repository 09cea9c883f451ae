package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ParseYAML checks a YAML document against the configuration schema and
// decodes it.
func ParseYAML(data []byte) (*Root, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if raw == nil {
		return nil, ErrEmptyFile
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &root, nil
}

// ToYAML renders a root in the YAML format accepted by ParseYAML.
func ToYAML(root *Root) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("wsconfig.json", strings.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("wsconfig.json")
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a decoded YAML document against configSchema.
func validateSchema(doc any) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	// Convert to JSON and back to ensure consistent types
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := schema.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrSchema, strings.Join(schemaMessages(verr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// schemaMessages flattens a validation error tree into leaf messages.
func schemaMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + err.Message}
	}
	var msgs []string
	for _, c := range err.Causes {
		msgs = append(msgs, schemaMessages(c)...)
	}
	return msgs
}

const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "clientConfigs":   { "type": "array", "items": { "$ref": "#/$defs/config" } },
    "endpointConfigs": { "type": "array", "items": { "$ref": "#/$defs/config" } }
  },
  "$defs": {
    "config": {
      "type": "object",
      "additionalProperties": false,
      "required": ["name"],
      "properties": {
        "name":              { "type": "string", "minLength": 1 },
        "properties":        { "type": "object", "additionalProperties": { "type": "string" } },
        "preHandlerChains":  { "type": "array", "items": { "$ref": "#/$defs/chain" } },
        "postHandlerChains": { "type": "array", "items": { "$ref": "#/$defs/chain" } }
      }
    },
    "chain": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "id":                 { "type": "string" },
        "portNamePattern":    { "type": "string" },
        "serviceNamePattern": { "type": "string" },
        "protocolBindings":   { "type": "string" },
        "handlers":           { "type": "array", "items": { "$ref": "#/$defs/handler" } }
      }
    },
    "handler": {
      "type": "object",
      "additionalProperties": false,
      "required": ["class"],
      "properties": {
        "name":  { "type": "string" },
        "class": { "type": "string", "minLength": 1 },
        "initParams": {
          "type": "array",
          "items": {
            "type": "object",
            "additionalProperties": false,
            "required": ["name", "value"],
            "properties": {
              "name":        { "type": "string" },
              "value":       { "type": "string" },
              "description": { "type": "string" }
            }
          }
        },
        "soapRoles":   { "type": "array", "items": { "type": "string" } },
        "soapHeaders": { "type": "array", "items": { "type": "string" } }
      }
    }
  }
}`
