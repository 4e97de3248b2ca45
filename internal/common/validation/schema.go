package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	apperrors "pizza-storefront/internal/common/errors"
)

// JSONSchema defines the structure for form schemas
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

type Property struct {
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
	Format      string              `json:"format,omitempty"`
	Pattern     string              `json:"pattern,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

func intPtr(v int) *int { return &v }

// Schema is a compiled form schema.
type Schema struct {
	name     string
	compiled *gojsonschema.Schema
}

// Compile turns a JSONSchema into a reusable validator.
func Compile(name string, schema JSONSchema) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompile is Compile for schemas defined in code.
func MustCompile(name string, schema JSONSchema) *Schema {
	s, err := Compile(name, schema)
	if err != nil {
		panic(err)
	}
	return s
}

// Check validates document and returns one FieldError per offending field,
// in the order gojsonschema reports them.
func (s *Schema) Check(document interface{}) ([]apperrors.FieldError, error) {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.name, err)
	}
	if result.Valid() {
		return nil, nil
	}

	seen := make(map[string]bool)
	fields := make([]apperrors.FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := fieldName(desc)
		if seen[field] {
			continue
		}
		seen[field] = true
		fields = append(fields, apperrors.FieldError{Field: field, Message: describe(desc)})
	}
	return fields, nil
}

// Validate returns a *errors.ValidationError when document does not satisfy
// the schema.
func (s *Schema) Validate(document interface{}) error {
	fields, err := s.Check(document)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fmt.Sprintf("invalid %s", s.name), fields...)
	}
	return nil
}

func fieldName(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if parent := desc.Field(); parent != "" && parent != gojsonschema.STRING_CONTEXT_ROOT {
				return parent + "." + prop
			}
			return prop
		}
	}
	return desc.Field()
}

func describe(desc gojsonschema.ResultError) string {
	switch desc.Type() {
	case "required":
		return "is required"
	case "string_gte", "pattern":
		return "must not be empty"
	case "format":
		return "must be a valid email address"
	case "array_min_items":
		return fmt.Sprintf("must have at least %v item(s)", desc.Details()["min"])
	case "invalid_type":
		return fmt.Sprintf("must be of type %v", desc.Details()["expected"])
	default:
		return desc.Description()
	}
}
