package domain

import (
	"context"
	"net/url"
	"strings"
)

// ResourceHandler produces the payload for a matched resource request.
// params holds the resolved placeholder values keyed by placeholder name;
// the returned value is serialized by the registry into one contents entry.
type ResourceHandler func(ctx context.Context, uri string, params map[string]string) (interface{}, error)

// Resource binds a URI template to a handler producing a read-only composite
// snapshot. Templates use {name} placeholders, one per path segment; a
// template without placeholders matches only its exact URI.
type Resource struct {
	Name        string
	URITemplate string
	Title       string
	Description string
	MIMEType    string
	Handler     ResourceHandler
}

// ResourceOption configures a Resource under construction.
type ResourceOption func(*Resource)

// WithResourceTitle sets the resource's human title.
func WithResourceTitle(title string) ResourceOption {
	return func(r *Resource) {
		r.Title = title
	}
}

// WithResourceDescription sets the resource description.
func WithResourceDescription(desc string) ResourceOption {
	return func(r *Resource) {
		r.Description = desc
	}
}

// WithMIMEType sets the MIME type reported for the resource contents.
func WithMIMEType(mimeType string) ResourceOption {
	return func(r *Resource) {
		r.MIMEType = mimeType
	}
}

// WithResourceHandler sets the resource handler.
func WithResourceHandler(handler ResourceHandler) ResourceOption {
	return func(r *Resource) {
		r.Handler = handler
	}
}

// NewResource builds a resource definition.
func NewResource(name, uriTemplate string, opts ...ResourceOption) *Resource {
	r := &Resource{
		Name:        name,
		URITemplate: uriTemplate,
		MIMEType:    "application/json",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TemplateMatch is the outcome of matching one URI against one template.
type TemplateMatch struct {
	// Params holds resolved placeholder values. Only meaningful when Matched.
	Params map[string]string
	// Matched reports a structural match: same segment count, static
	// segments equal, placeholders resolvable.
	Matched bool
	// EmptyPlaceholder names a placeholder whose segment arrived empty or
	// blank. The shape matched, so the request is the caller's mistake, not
	// an unknown URI.
	EmptyPlaceholder string
}

// MatchTemplate matches uri against template. Placeholders ({name}) consume
// exactly one path segment; placeholder values are percent-decoded. A static
// template matches only the identical URI.
func MatchTemplate(template, uri string) TemplateMatch {
	if !strings.Contains(template, "{") {
		return TemplateMatch{Matched: template == uri, Params: map[string]string{}}
	}

	templateParts := strings.Split(template, "/")
	uriParts := strings.Split(uri, "/")
	if len(templateParts) != len(uriParts) {
		return TemplateMatch{}
	}

	params := map[string]string{}
	for i, part := range templateParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			value := uriParts[i]
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
			if strings.TrimSpace(value) == "" {
				return TemplateMatch{Matched: true, EmptyPlaceholder: name}
			}
			params[name] = value
			continue
		}
		if part != uriParts[i] {
			return TemplateMatch{}
		}
	}
	return TemplateMatch{Matched: true, Params: params}
}
