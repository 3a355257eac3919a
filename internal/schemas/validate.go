// Package schemas validates capability-provider JSON output against embedded
// JSON Schemas before any stage unmarshals it. Malformed provider output is
// caught here with field-level detail instead of surfacing as a partial
// decode downstream.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names accepted by Validate.
const (
	ExtractionResult = "extraction_result"
	RewriteResult    = "rewrite_result"
	PlanResult       = "plan_result"
)

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports one or more schema violations in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("document does not match schema %s: %s", e.Schema, strings.Join(msgs, "; "))
}

// Validate checks a JSON document against the named embedded schema.
// Returns *ValidationError when the document is well-formed JSON that
// violates the schema, or a plain error when the document cannot be parsed.
func Validate(name, document string) error {
	schemaBytes, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return verr
}
