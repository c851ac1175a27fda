package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

// maxStdioLineBytes bounds one inbound frame on the pipe transport.
const maxStdioLineBytes = 4 * 1024 * 1024

// StdioContextFunc is a function that takes an existing context and returns
// a potentially modified context. The pipe transport uses one context for
// its whole lifetime, so this runs once per server instance.
type StdioContextFunc func(ctx context.Context) context.Context

// StdioServer serves the single implicit pipe session: newline-delimited
// JSON-RPC frames read from stdin, dispatched serially in arrival order,
// responses written to stdout under a write mutex. All logging goes to
// the structured logger, which writes to stderr; stdout carries protocol
// frames only.
type StdioServer struct {
	logger      *logging.Logger
	dispatch    DispatchFunc
	contextFunc StdioContextFunc
	mu          sync.Mutex
}

// StdioOption defines a function type for configuring StdioServer
type StdioOption func(*StdioServer)

// WithStdioContextFunc sets a function that will be called to customize the
// context handed to the dispatcher.
func WithStdioContextFunc(fn StdioContextFunc) StdioOption {
	return func(s *StdioServer) {
		s.contextFunc = fn
	}
}

// NewStdioServer creates a pipe transport bound to the shared dispatch
// function.
func NewStdioServer(dispatch DispatchFunc, logger *logging.Logger, opts ...StdioOption) *StdioServer {
	if logger == nil {
		logger = logging.Default()
	}
	s := &StdioServer{
		logger:   logger,
		dispatch: dispatch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listen reads JSON-RPC messages from stdin and writes responses to
// stdout until the context is cancelled or the input closes. EOF is a
// clean exit; an over-long line aborts the stream because the reader
// cannot resynchronize past it.
func (s *StdioServer) Listen(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if s.contextFunc != nil {
		ctx = s.contextFunc(ctx)
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), maxStdioLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					s.logger.Error("stdin read failed", logging.Fields{"error": err.Error()})
					return err
				}
				s.logger.Info("input stream closed")
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}

			response := s.dispatch(ctx, json.RawMessage(line))
			if response == nil {
				continue
			}
			if err := s.writeResponse(stdout, response); err != nil {
				s.logger.Error("response write failed", logging.Fields{"error": err.Error()})
				return err
			}
		}
	}
}

// writeResponse marshals and writes one response frame followed by a
// newline.
func (s *StdioServer) writeResponse(writer io.Writer, response interface{}) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error marshaling response: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(writer, "%s\n", data); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}

// ServeStdio runs the pipe transport on os.Stdin and os.Stdout until the
// input closes or a termination signal arrives.
func ServeStdio(dispatch DispatchFunc, logger *logging.Logger, opts ...StdioOption) error {
	s := NewStdioServer(dispatch, logger, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.logger.Info("pipe transport listening")

	err := s.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.Info("pipe transport stopped")
	return nil
}
