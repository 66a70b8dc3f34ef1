// Package schemas validates extraction output against its JSON Schema.
package schemas

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ExtractionResultName names the embedded extraction result schema in errors.
const ExtractionResultName = "extraction_result.schema.json"

//go:embed extraction_result.schema.json
var extractionResultSchema string

var (
	resultSchemaOnce sync.Once
	resultSchema     *gojsonschema.Schema
	resultSchemaErr  error
)

// ValidationError lists every schema rule a document broke.
type ValidationError struct {
	Violations []Violation
}

// Violation is one broken rule. Path is the dotted JSON path of the offending
// value, or "(root)" for the document itself, and Rule is the gojsonschema
// error type such as "required" or "pattern".
type Violation struct {
	Path   string
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		v := e.Violations[0]
		return fmt.Sprintf("schema violation at %s: %s", v.Path, v.Detail)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d schema violations:", len(e.Violations))
	for _, v := range e.Violations {
		fmt.Fprintf(&sb, "\n  %s: %s", v.Path, v.Detail)
	}
	return sb.String()
}

// SchemaError reports a schema that does not compile.
type SchemaError struct {
	Name string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %s does not compile: %v", e.Name, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ExtractionResultSchema returns the embedded schema document.
func ExtractionResultSchema() string {
	return extractionResultSchema
}

func compiledResultSchema() (*gojsonschema.Schema, error) {
	resultSchemaOnce.Do(func() {
		resultSchema, resultSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(extractionResultSchema))
		if resultSchemaErr != nil {
			resultSchemaErr = &SchemaError{Name: ExtractionResultName, Err: resultSchemaErr}
		}
	})
	return resultSchema, resultSchemaErr
}

// ValidateResultJSON validates raw JSON against the extraction result schema.
// A JSON array is validated element by element.
func ValidateResultJSON(data []byte) error {
	schema, err := compiledResultSchema()
	if err != nil {
		return err
	}

	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return validateWith(schema, gojsonschema.NewBytesLoader(data))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	var violations []Violation
	for i, item := range items {
		err := validateWith(schema, gojsonschema.NewBytesLoader(item))
		var ve *ValidationError
		switch {
		case err == nil:
			continue
		case !errors.As(err, &ve):
			return fmt.Errorf("item %d: %w", i, err)
		}
		for _, v := range ve.Violations {
			v.Path = fmt.Sprintf("[%d].%s", i, v.Path)
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ValidateResultFile validates a JSON file written by the CLI.
func ValidateResultFile(jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(jsonAbsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	return ValidateResultJSON(data)
}

func validateWith(schema *gojsonschema.Schema, document gojsonschema.JSONLoader) error {
	result, err := schema.Validate(document)
	if err != nil {
		return fmt.Errorf("failed to load JSON document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		path := desc.Field()
		if path == "" {
			path = "(root)"
		}
		violations = append(violations, Violation{Path: path, Rule: desc.Type(), Detail: desc.Description()})
	}
	return &ValidationError{Violations: violations}
}
