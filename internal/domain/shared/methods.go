package shared

import "encoding/json"

// MCP method names
const (
	// Core methods
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodPing        = "ping"

	// Resource methods
	MethodListResources = "resources/list"
	MethodReadResource  = "resources/read"

	// Tool methods
	MethodListTools = "tools/list"
	MethodCallTool  = "tools/call"
)

// ProtocolVersion is the MCP protocol revision this server speaks.
const ProtocolVersion = "2024-11-05"

// InitializeParams represents parameters for the initialize method
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ClientInfo      ServerInfo `json:"clientInfo"`
}

// InitializeResult represents the result of the initialize method
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ListResourcesResult represents the result of the resources/list method
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// ReadResourceParams represents parameters for the resources/read method
type ReadResourceParams struct {
	URI string `json:"uri"`
}

// ReadResourceResult represents the result of the resources/read method
type ReadResourceResult struct {
	Contents []ResourceContents `json:"contents"`
}

// ListToolsResult represents the result of the tools/list method
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams represents parameters for the tools/call method
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// CallToolResult represents the result of the tools/call method
type CallToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}
