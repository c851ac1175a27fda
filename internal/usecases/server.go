// Package usecases implements the application core shared by every
// transport: the tool and resource registries plus the JSON-RPC
// dispatch binding protocol methods to them.
package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

// maxLoggedArguments caps the argument excerpt recorded per tool call.
const maxLoggedArguments = 256

// ServerService owns the registries and answers protocol messages.
// Both registries are populated at startup and read-only afterwards,
// so sessions share them without locking.
type ServerService struct {
	info   shared.ServerInfo
	logger *logging.Logger

	tools     map[string]*domain.Tool
	toolNames []string
	resources []*domain.Resource
}

// ServerConfig contains configuration for the ServerService.
type ServerConfig struct {
	Name    string
	Version string
	Logger  *logging.Logger
}

// NewServerService creates an empty service; tools and resources are
// registered by the caller before any transport starts.
func NewServerService(cfg ServerConfig) *ServerService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &ServerService{
		info:   shared.ServerInfo{Name: cfg.Name, Version: cfg.Version},
		logger: logger,
		tools:  make(map[string]*domain.Tool),
	}
}

// Info returns the identity reported to clients on initialize.
func (s *ServerService) Info() shared.ServerInfo {
	return s.info
}

// RegisterTool adds a tool to the registry. Registration happens during
// startup only; a nameless tool or one without a handler is a
// programming error and the process must not come up, hence the panic.
// Registering the same name twice keeps the latest definition.
func (s *ServerService) RegisterTool(tool *domain.Tool) {
	if tool == nil || tool.Name == "" {
		panic("usecases: tool registered without a name")
	}
	if tool.Handler == nil {
		panic(fmt.Sprintf("usecases: tool %q registered without a handler", tool.Name))
	}
	if tool.Schema == nil {
		tool.Schema = domain.NewSchema()
	}

	if _, exists := s.tools[tool.Name]; exists {
		s.logger.Warn("tool registered twice, keeping the latest definition", logging.Fields{
			"tool": tool.Name,
		})
	} else {
		s.toolNames = append(s.toolNames, tool.Name)
	}
	s.tools[tool.Name] = tool
}

// RegisterResource adds a resource with the same startup invariants as
// RegisterTool. Template matching later happens in registration order,
// so re-registering a name keeps its original position.
func (s *ServerService) RegisterResource(res *domain.Resource) {
	if res == nil || res.Name == "" {
		panic("usecases: resource registered without a name")
	}
	if res.URITemplate == "" {
		panic(fmt.Sprintf("usecases: resource %q registered without a URI template", res.Name))
	}
	if res.Handler == nil {
		panic(fmt.Sprintf("usecases: resource %q registered without a handler", res.Name))
	}

	for i, existing := range s.resources {
		if existing.Name == res.Name {
			s.logger.Warn("resource registered twice, keeping the latest definition", logging.Fields{
				"resource": res.Name,
			})
			s.resources[i] = res
			return
		}
	}
	s.resources = append(s.resources, res)
}

// ListTools returns the registered tools in registration order.
func (s *ServerService) ListTools() []*domain.Tool {
	out := make([]*domain.Tool, 0, len(s.toolNames))
	for _, name := range s.toolNames {
		out = append(out, s.tools[name])
	}
	return out
}

// ListResources returns the registered resources in registration order.
func (s *ServerService) ListResources() []*domain.Resource {
	out := make([]*domain.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// CallTool validates the raw arguments against the tool's schema and
// runs its handler. Handler errors pass through unchanged; it is the
// transport's job to surface them as protocol errors.
func (s *ServerService) CallTool(ctx context.Context, name string, rawArgs json.RawMessage) ([]shared.Content, error) {
	tool, ok := s.tools[name]
	if !ok {
		err := domain.NewNotFoundError(fmt.Sprintf("tool %q is not registered", name), nil)
		s.logToolCall(name, rawArgs, err)
		return nil, err
	}

	in, err := tool.Schema.Validate(rawArgs)
	if err != nil {
		s.logToolCall(name, rawArgs, err)
		return nil, err
	}

	content, err := tool.Handler(ctx, in)
	s.logToolCall(name, rawArgs, err)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// ReadResource resolves a URI against the registered templates in
// registration order and runs the first structural match's handler.
// The handler result becomes a single contents entry carrying the
// requested URI.
func (s *ServerService) ReadResource(ctx context.Context, uri string) (*shared.ReadResourceResult, error) {
	for _, res := range s.resources {
		match := domain.MatchTemplate(res.URITemplate, uri)
		if !match.Matched {
			continue
		}
		if match.EmptyPlaceholder != "" {
			return nil, domain.NewUserInputError(
				fmt.Sprintf("resource %q requires a non-empty {%s} segment", res.Name, match.EmptyPlaceholder), nil)
		}

		value, err := res.Handler(ctx, uri, match.Params)
		if err != nil {
			return nil, err
		}

		text, err := renderResourceText(value)
		if err != nil {
			return nil, domain.NewInternalServerError(
				fmt.Sprintf("resource %q produced an unserializable value", res.Name), nil).WithCause(err)
		}

		return &shared.ReadResourceResult{
			Contents: []shared.ResourceContents{{
				URI:      uri,
				MIMEType: res.MIMEType,
				Text:     text,
			}},
		}, nil
	}
	return nil, domain.NewNotFoundError(fmt.Sprintf("no resource matches %q", uri), nil)
}

// HandleMessage answers one raw JSON-RPC message. The returned value is
// the response to send back, or nil when the message was a
// notification.
func (s *ServerService) HandleMessage(ctx context.Context, raw json.RawMessage) interface{} {
	var req shared.JSONRPCRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return shared.NewErrorResponse(nil, shared.ParseError, shared.ErrorMessage(shared.ParseError), nil)
	}

	if req.JSONRPC != shared.JSONRPCVersion || req.Method == "" {
		return shared.NewErrorResponse(req.ID, shared.InvalidRequest, shared.ErrorMessage(shared.InvalidRequest), nil)
	}

	if req.IsNotification() {
		s.handleNotification(req)
		return nil
	}

	s.logger.Debug("handling request", logging.Fields{"method": req.Method})

	switch req.Method {
	case shared.MethodInitialize:
		return shared.NewResponse(req.ID, s.initializeResult())
	case shared.MethodPing:
		return shared.NewResponse(req.ID, struct{}{})
	case shared.MethodListTools:
		return shared.NewResponse(req.ID, s.listToolsResult())
	case shared.MethodCallTool:
		return s.handleCallTool(ctx, req)
	case shared.MethodListResources:
		return shared.NewResponse(req.ID, s.listResourcesResult())
	case shared.MethodReadResource:
		return s.handleReadResource(ctx, req)
	default:
		return shared.NewErrorResponse(req.ID, shared.MethodNotFound, fmt.Sprintf("Method '%s' not found", req.Method), nil)
	}
}

func (s *ServerService) handleNotification(req shared.JSONRPCRequest) {
	switch req.Method {
	case shared.MethodInitialized:
		s.logger.Debug("client completed initialization")
	default:
		s.logger.Debug("ignoring notification", logging.Fields{"method": req.Method})
	}
}

func (s *ServerService) initializeResult() shared.InitializeResult {
	return shared.InitializeResult{
		ProtocolVersion: shared.ProtocolVersion,
		ServerInfo:      s.info,
		Capabilities: shared.Capabilities{
			Resources: &shared.ResourcesCapability{},
			Tools:     &shared.ToolsCapability{},
		},
	}
}

func (s *ServerService) listToolsResult() shared.ListToolsResult {
	tools := make([]shared.Tool, 0, len(s.toolNames))
	for _, name := range s.toolNames {
		tool := s.tools[name]
		tools = append(tools, shared.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.Schema,
		})
	}
	return shared.ListToolsResult{Tools: tools}
}

func (s *ServerService) listResourcesResult() shared.ListResourcesResult {
	resources := make([]shared.Resource, 0, len(s.resources))
	for _, res := range s.resources {
		resources = append(resources, shared.Resource{
			URI:         res.URITemplate,
			Name:        res.Name,
			Description: res.Description,
			MIMEType:    res.MIMEType,
		})
	}
	return shared.ListResourcesResult{Resources: resources}
}

func (s *ServerService) handleCallTool(ctx context.Context, req shared.JSONRPCRequest) interface{} {
	var params shared.CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return shared.NewErrorResponse(req.ID, shared.InvalidParams, shared.ErrorMessage(shared.InvalidParams), nil)
		}
	}
	if params.Name == "" {
		return shared.NewErrorResponse(req.ID, shared.InvalidParams, "tools/call requires a tool name", nil)
	}

	content, err := s.CallTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	if content == nil {
		content = []shared.Content{}
	}
	return shared.NewResponse(req.ID, shared.CallToolResult{Content: content})
}

func (s *ServerService) handleReadResource(ctx context.Context, req shared.JSONRPCRequest) interface{} {
	var params shared.ReadResourceParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return shared.NewErrorResponse(req.ID, shared.InvalidParams, shared.ErrorMessage(shared.InvalidParams), nil)
		}
	}
	if params.URI == "" {
		return shared.NewErrorResponse(req.ID, shared.InvalidParams, "resources/read requires a uri", nil)
	}

	result, err := s.ReadResource(ctx, params.URI)
	if err != nil {
		return errorResponse(req.ID, err)
	}
	return shared.NewResponse(req.ID, result)
}

// errorResponse maps a domain error onto the protocol error table.
func errorResponse(id shared.RequestID, err error) shared.JSONRPCResponse {
	var code shared.ErrorCode
	switch domain.KindOf(err) {
	case domain.KindUserInput:
		code = shared.InvalidParams
	case domain.KindNotFound:
		code = shared.NotFound
	case domain.KindAuthentication, domain.KindForbidden:
		code = shared.ServerError
	default:
		code = shared.InternalError
	}
	return shared.NewErrorResponse(id, code, err.Error(), nil)
}

func (s *ServerService) logToolCall(name string, rawArgs json.RawMessage, err error) {
	fields := logging.Fields{
		"tool":      name,
		"arguments": truncateForLog(rawArgs),
	}
	if err != nil {
		fields["outcome"] = "error"
		fields["error"] = err.Error()
		s.logger.Warn("tool call failed", fields)
		return
	}
	fields["outcome"] = "ok"
	s.logger.Info("tool call completed", fields)
}

func truncateForLog(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if len(raw) > maxLoggedArguments {
		return string(raw[:maxLoggedArguments]) + "..."
	}
	return string(raw)
}

func renderResourceText(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}
