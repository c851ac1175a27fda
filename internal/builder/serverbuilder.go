// Package builder assembles the adapter: configuration, logger, backend
// client, dispatcher, and transports. The cmd layer builds everything
// through it so the wiring lives in one place.
package builder

import (
	"github.com/pkg/errors"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/config"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/jira"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/server"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/usecases/boardtools"
)

// RegisterFunc populates a dispatcher with tools and resources.
type RegisterFunc func(*usecases.ServerService, *jira.Client)

// ServerBuilder implements the Builder pattern for creating adapter servers
type ServerBuilder struct {
	name     string
	version  string
	addr     string
	basePath string
	logger   *logging.Logger
	client   *jira.Client
	register RegisterFunc
}

// NewServerBuilder creates a new server builder with default values
func NewServerBuilder() *ServerBuilder {
	return &ServerBuilder{
		name:     "mcp-jira-board",
		version:  "dev",
		addr:     ":8080",
		register: boardtools.RegisterAll,
	}
}

// WithName sets the server name advertised during initialization
func (b *ServerBuilder) WithName(name string) *ServerBuilder {
	b.name = name
	return b
}

// WithVersion sets the server version advertised during initialization
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.version = version
	return b
}

// WithAddress sets the HTTP listen address
func (b *ServerBuilder) WithAddress(addr string) *ServerBuilder {
	b.addr = addr
	return b
}

// WithBasePath sets the prefix both HTTP transports are mounted under
func (b *ServerBuilder) WithBasePath(basePath string) *ServerBuilder {
	b.basePath = basePath
	return b
}

// WithLogger sets the logger shared by every component
func (b *ServerBuilder) WithLogger(logger *logging.Logger) *ServerBuilder {
	b.logger = logger
	return b
}

// WithJiraClient sets the backend client the tool handlers call
func (b *ServerBuilder) WithJiraClient(client *jira.Client) *ServerBuilder {
	b.client = client
	return b
}

// WithRegisterFunc replaces the default tool and resource registration
func (b *ServerBuilder) WithRegisterFunc(register RegisterFunc) *ServerBuilder {
	b.register = register
	return b
}

// FromConfig applies a validated configuration: it builds the logger and
// the backend client and takes over the listener settings.
func (b *ServerBuilder) FromConfig(cfg *config.Config) (*ServerBuilder, error) {
	logger, err := logging.New(logging.Config{
		Level:       logging.ParseLevel(cfg.Logging.Level),
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}
	b.logger = logger
	b.client = jira.NewClient(cfg.Jira)
	if cfg.Server.Addr != "" {
		b.addr = cfg.Server.Addr
	}
	b.basePath = cfg.Server.BasePath
	return b, nil
}

// Logger returns the configured logger, falling back to the default one.
func (b *ServerBuilder) Logger() *logging.Logger {
	if b.logger == nil {
		return logging.Default()
	}
	return b.logger
}

// Address returns the HTTP listen address the router binds.
func (b *ServerBuilder) Address() string {
	return b.addr
}

// BuildService builds the dispatcher with every tool and resource
// registered against the configured backend client.
func (b *ServerBuilder) BuildService() (*usecases.ServerService, error) {
	if b.client == nil {
		return nil, errors.New("no Jira client configured; call FromConfig or WithJiraClient first")
	}
	svc := usecases.NewServerService(usecases.ServerConfig{
		Name:    b.name,
		Version: b.version,
		Logger:  b.Logger(),
	})
	if b.register != nil {
		b.register(svc, b.client)
	}
	return svc, nil
}

// BuildStdioServer builds the pipe transport over the dispatcher.
func (b *ServerBuilder) BuildStdioServer(opts ...server.StdioOption) (*server.StdioServer, error) {
	svc, err := b.BuildService()
	if err != nil {
		return nil, err
	}
	return server.NewStdioServer(svc.HandleMessage, b.Logger(), opts...), nil
}

// ServeStdio builds the pipe transport and serves it until the input
// stream closes or a termination signal arrives.
func (b *ServerBuilder) ServeStdio(opts ...server.StdioOption) error {
	svc, err := b.BuildService()
	if err != nil {
		return err
	}
	return server.ServeStdio(svc.HandleMessage, b.Logger(), opts...)
}

// BuildRouter builds both HTTP session managers behind one router.
func (b *ServerBuilder) BuildRouter() (*server.Router, error) {
	svc, err := b.BuildService()
	if err != nil {
		return nil, err
	}
	logger := b.Logger()

	streamable := server.NewStreamableServer(svc.HandleMessage, server.NewSessionStore(), logger,
		server.WithStreamableBasePath(b.basePath))
	sse := server.NewSSEServer(svc.HandleMessage, server.NewSessionStore(), logger,
		server.WithSSEBasePath(b.basePath))

	return server.NewRouter(streamable, sse, logger,
		server.WithRouterBasePath(b.basePath)), nil
}
