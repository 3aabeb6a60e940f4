// Package validation validates inbound request payloads against JSON schemas.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks a raw JSON document against a JSON schema document.
func Validate(schemaJSON, document []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}

// VoiceCommandSchema constrains the voice command endpoint payload.
var VoiceCommandSchema = []byte(`{
	"type": "object",
	"properties": {
		"texto": {"type": "string", "minLength": 1, "maxLength": 500}
	},
	"required": ["texto"],
	"additionalProperties": false
}`)
