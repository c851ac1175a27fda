package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func boardSchema() *Schema {
	return NewSchema(
		WithString("name", Required(), Description("Board name")),
		WithString("type", Required(), Enum("scrum", "kanban")),
		WithNumber("filterId", Required()),
		WithString("projectKeyOrId"),
		WithNumber("maxResults"),
		WithBoolean("dryRun"),
		WithStringArray("issues"),
	)
}

func TestSchemaValidateSuccess(t *testing.T) {
	raw := json.RawMessage(`{
		"name": "Platform",
		"type": "scrum",
		"filterId": 10001,
		"maxResults": 25,
		"dryRun": true,
		"issues": ["KAN-1", "KAN-2"]
	}`)

	in, err := boardSchema().Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if got := in.String("name"); got != "Platform" {
		t.Errorf("String(name) = %q", got)
	}
	if got := in.Int("filterId"); got != 10001 {
		t.Errorf("Int(filterId) = %d", got)
	}
	if got := in.IntOr("startAt", 5); got != 5 {
		t.Errorf("IntOr(startAt, 5) = %d", got)
	}
	if !in.Bool("dryRun") {
		t.Errorf("Bool(dryRun) = false")
	}
	if got := in.StringSlice("issues"); len(got) != 2 || got[0] != "KAN-1" {
		t.Errorf("StringSlice(issues) = %v", got)
	}
	if in.Has("projectKeyOrId") {
		t.Errorf("Has(projectKeyOrId) = true for absent field")
	}
}

func TestSchemaValidateViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "missing required fields",
			raw:  `{"name": "Platform"}`,
			want: []string{`missing required field "type"`, `missing required field "filterId"`},
		},
		{
			name: "wrong string type",
			raw:  `{"name": 7, "type": "scrum", "filterId": 1}`,
			want: []string{`field "name" must be a string`},
		},
		{
			name: "enum violation",
			raw:  `{"name": "x", "type": "waterfall", "filterId": 1}`,
			want: []string{`field "type" must be one of [scrum, kanban]`},
		},
		{
			name: "wrong number type",
			raw:  `{"name": "x", "type": "scrum", "filterId": "ten"}`,
			want: []string{`field "filterId" must be a number`},
		},
		{
			name: "wrong boolean type",
			raw:  `{"name": "x", "type": "scrum", "filterId": 1, "dryRun": "yes"}`,
			want: []string{`field "dryRun" must be a boolean`},
		},
		{
			name: "wrong array type",
			raw:  `{"name": "x", "type": "scrum", "filterId": 1, "issues": "KAN-1"}`,
			want: []string{`field "issues" must be an array`},
		},
		{
			name: "array with non-string element",
			raw:  `{"name": "x", "type": "scrum", "filterId": 1, "issues": ["KAN-1", 2]}`,
			want: []string{`field "issues" must contain only strings`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := boardSchema().Validate(json.RawMessage(tt.raw))
			if err == nil {
				t.Fatalf("Validate() accepted invalid input")
			}
			if !IsUserInput(err) {
				t.Fatalf("Validate() error kind = %v, want user input", KindOf(err))
			}
			for _, fragment := range tt.want {
				if !strings.Contains(err.Error(), fragment) {
					t.Errorf("error %q does not name violation %q", err.Error(), fragment)
				}
			}
		})
	}
}

func TestSchemaValidateNonObject(t *testing.T) {
	_, err := boardSchema().Validate(json.RawMessage(`[1, 2, 3]`))
	if err == nil || !IsUserInput(err) {
		t.Fatalf("Validate() on array = %v, want user-input error", err)
	}
}

func TestSchemaValidateEmptyArguments(t *testing.T) {
	schema := NewSchema(WithString("jql"))

	for _, raw := range []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage("{}")} {
		in, err := schema.Validate(raw)
		if err != nil {
			t.Fatalf("Validate(%q) error = %v", string(raw), err)
		}
		if in.Has("jql") {
			t.Errorf("Has(jql) = true for empty input %q", string(raw))
		}
	}
}

func TestSchemaMarshalJSON(t *testing.T) {
	data, err := json.Marshal(boardSchema())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var rendered struct {
		Type       string                            `json:"type"`
		Properties map[string]map[string]interface{} `json:"properties"`
		Required   []string                          `json:"required"`
	}
	if err := json.Unmarshal(data, &rendered); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if rendered.Type != "object" {
		t.Errorf("type = %q, want object", rendered.Type)
	}
	if len(rendered.Properties) != 7 {
		t.Errorf("properties = %d, want 7", len(rendered.Properties))
	}
	if rendered.Properties["type"]["enum"] == nil {
		t.Errorf("enum missing from rendered schema")
	}
	if items, ok := rendered.Properties["issues"]["items"].(map[string]interface{}); !ok || items["type"] != "string" {
		t.Errorf("array items = %v", rendered.Properties["issues"]["items"])
	}
	if len(rendered.Required) != 3 {
		t.Errorf("required = %v, want three entries", rendered.Required)
	}
}

func TestSchemaMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewSchema())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"properties":{},"type":"object"}` {
		t.Errorf("empty schema = %s", data)
	}
}
