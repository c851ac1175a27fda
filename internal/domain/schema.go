package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Property types accepted by tool input schemas. JSON numbers always decode
// to float64; TypeNumber covers both integral and fractional values.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// Property describes one named field of a tool's input object.
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Enum        []string
	// Items is the element type for TypeArray properties.
	Items string
}

// Schema is the structural validator for a tool's input object. Properties
// keep registration order so rendered JSON schemas stay stable.
type Schema struct {
	properties []Property
}

// SchemaOption configures a Schema under construction.
type SchemaOption func(*Schema)

// PropertyOption configures a single schema property.
type PropertyOption func(*Property)

// Description sets the property description.
func Description(desc string) PropertyOption {
	return func(p *Property) {
		p.Description = desc
	}
}

// Required marks the property as required.
func Required() PropertyOption {
	return func(p *Property) {
		p.Required = true
	}
}

// Enum restricts a string property to the given values.
func Enum(values ...string) PropertyOption {
	return func(p *Property) {
		p.Enum = values
	}
}

// WithString adds a string property to the schema.
func WithString(name string, opts ...PropertyOption) SchemaOption {
	return withProperty(name, TypeString, "", opts)
}

// WithNumber adds a numeric property to the schema.
func WithNumber(name string, opts ...PropertyOption) SchemaOption {
	return withProperty(name, TypeNumber, "", opts)
}

// WithBoolean adds a boolean property to the schema.
func WithBoolean(name string, opts ...PropertyOption) SchemaOption {
	return withProperty(name, TypeBoolean, "", opts)
}

// WithStringArray adds a string-array property to the schema.
func WithStringArray(name string, opts ...PropertyOption) SchemaOption {
	return withProperty(name, TypeArray, TypeString, opts)
}

func withProperty(name, typ, items string, opts []PropertyOption) SchemaOption {
	return func(s *Schema) {
		prop := Property{Name: name, Type: typ, Items: items}
		for _, opt := range opts {
			opt(&prop)
		}
		s.properties = append(s.properties, prop)
	}
}

// NewSchema builds an object schema from the given property options.
func NewSchema(opts ...SchemaOption) *Schema {
	s := &Schema{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Properties returns the schema's properties in declaration order.
func (s *Schema) Properties() []Property {
	return s.properties
}

// MarshalJSON renders the schema as a JSON Schema object, the shape clients
// receive from tools/list.
func (s *Schema) MarshalJSON() ([]byte, error) {
	properties := make(map[string]interface{}, len(s.properties))
	required := make([]string, 0)
	for _, prop := range s.properties {
		rendered := map[string]interface{}{"type": prop.Type}
		if prop.Description != "" {
			rendered["description"] = prop.Description
		}
		if len(prop.Enum) > 0 {
			rendered["enum"] = prop.Enum
		}
		if prop.Type == TypeArray {
			rendered["items"] = map[string]interface{}{"type": prop.Items}
		}
		properties[prop.Name] = rendered
		if prop.Required {
			required = append(required, prop.Name)
		}
	}
	rendered := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		rendered["required"] = required
	}
	return json.Marshal(rendered)
}

// ToolInput is the validated-argument view handed to tool handlers. Values
// have already passed schema validation; accessors return zero values for
// absent optional fields.
type ToolInput struct {
	values map[string]interface{}
}

// Has reports whether the field was supplied.
func (in ToolInput) Has(name string) bool {
	_, ok := in.values[name]
	return ok
}

// String returns the named string field, or "" when absent.
func (in ToolInput) String(name string) string {
	v, _ := in.values[name].(string)
	return v
}

// StringOr returns the named string field, or def when absent.
func (in ToolInput) StringOr(name, def string) string {
	if v, ok := in.values[name].(string); ok {
		return v
	}
	return def
}

// Float returns the named numeric field, or 0 when absent.
func (in ToolInput) Float(name string) float64 {
	v, _ := in.values[name].(float64)
	return v
}

// Int returns the named numeric field truncated to int, or 0 when absent.
func (in ToolInput) Int(name string) int {
	return int(in.Float(name))
}

// IntOr returns the named numeric field truncated to int, or def when absent.
func (in ToolInput) IntOr(name string, def int) int {
	if v, ok := in.values[name].(float64); ok {
		return int(v)
	}
	return def
}

// Bool returns the named boolean field, or false when absent.
func (in ToolInput) Bool(name string) bool {
	v, _ := in.values[name].(bool)
	return v
}

// StringSlice returns the named string-array field, or nil when absent.
func (in ToolInput) StringSlice(name string) []string {
	raw, ok := in.values[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, _ := item.(string)
		out = append(out, s)
	}
	return out
}

// Validate checks rawArgs against the schema and returns the typed input.
// The returned error is a user-input error whose message names every
// offending field and the constraint it violated.
func (s *Schema) Validate(rawArgs json.RawMessage) (ToolInput, error) {
	values := map[string]interface{}{}
	if len(rawArgs) > 0 && string(rawArgs) != "null" {
		if err := json.Unmarshal(rawArgs, &values); err != nil {
			return ToolInput{}, NewUserInputError(
				"invalid arguments: expected a JSON object",
				&ErrorContext{RequestInput: string(rawArgs)},
			).WithCause(err)
		}
	}

	var violations []string
	for _, prop := range s.properties {
		value, present := values[prop.Name]
		if !present {
			if prop.Required {
				violations = append(violations, fmt.Sprintf("missing required field %q", prop.Name))
			}
			continue
		}
		if msg := checkType(prop, value); msg != "" {
			violations = append(violations, msg)
		}
	}

	if len(violations) > 0 {
		return ToolInput{}, NewUserInputError(
			"invalid arguments: "+strings.Join(violations, "; "),
			&ErrorContext{RequestInput: values},
		)
	}
	return ToolInput{values: values}, nil
}

func checkType(prop Property, value interface{}) string {
	switch prop.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("field %q must be a string", prop.Name)
		}
		if len(prop.Enum) > 0 && !contains(prop.Enum, s) {
			return fmt.Sprintf("field %q must be one of [%s]", prop.Name, strings.Join(prop.Enum, ", "))
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Sprintf("field %q must be a number", prop.Name)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("field %q must be a boolean", prop.Name)
		}
	case TypeArray:
		items, ok := value.([]interface{})
		if !ok {
			return fmt.Sprintf("field %q must be an array", prop.Name)
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("field %q must contain only strings", prop.Name)
			}
		}
	}
	return ""
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
