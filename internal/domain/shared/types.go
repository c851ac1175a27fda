package shared

// ServerInfo contains information about the server
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities represents the server's capabilities
type Capabilities struct {
	Resources *ResourcesCapability `json:"resources,omitempty"`
	Tools     *ToolsCapability     `json:"tools,omitempty"`
}

// ResourcesCapability indicates support for resources
type ResourcesCapability struct{}

// ToolsCapability indicates support for tools
type ToolsCapability struct{}

// Resource represents a resource exposed by the server
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// ResourceContents is one entry of a resources/read result
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Tool represents a tool exposed by the server
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	InputSchema interface{} `json:"inputSchema"`
}

// Content represents content returned by tools
type Content interface {
	GetType() string
}

// TextContent represents text content
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GetType returns the content type
func (t TextContent) GetType() string {
	return t.Type
}

// NewTextContent builds a text content entry.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}
