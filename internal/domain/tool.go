package domain

import (
	"context"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
)

// ToolHandler executes a tool call with already-validated input and returns
// the content entries for the response envelope. Failures are returned as
// typed errors; the registry never reinterprets them.
type ToolHandler func(ctx context.Context, in ToolInput) ([]shared.Content, error)

// Tool binds a process-wide unique name to an input schema and a handler.
// Tools are registered during startup and immutable afterwards.
type Tool struct {
	Name        string
	Title       string
	Description string
	Schema      *Schema
	Handler     ToolHandler
}

// ToolOption configures a Tool under construction.
type ToolOption func(*Tool)

// WithTitle sets the tool's human title.
func WithTitle(title string) ToolOption {
	return func(t *Tool) {
		t.Title = title
	}
}

// WithDescription sets the tool description.
func WithDescription(desc string) ToolOption {
	return func(t *Tool) {
		t.Description = desc
	}
}

// WithSchema sets the tool's input schema.
func WithSchema(schema *Schema) ToolOption {
	return func(t *Tool) {
		t.Schema = schema
	}
}

// WithHandler sets the tool handler.
func WithHandler(handler ToolHandler) ToolOption {
	return func(t *Tool) {
		t.Handler = handler
	}
}

// NewTool builds a tool definition. A tool without an explicit schema gets an
// empty object schema so validation and schema rendering stay total.
func NewTool(name string, opts ...ToolOption) *Tool {
	t := &Tool{Name: name}
	for _, opt := range opts {
		opt(t)
	}
	if t.Schema == nil {
		t.Schema = NewSchema()
	}
	return t
}
