package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the SSE and streamable HTTP transports",
	Long: `Serve starts one HTTP listener hosting both HTTP transports:
the streamable transport under /mcp and the SSE transport under /sse.
SIGINT or SIGTERM closes every live session and stops the listener.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	b, err := loadBuilder()
	if err != nil {
		return err
	}
	logger := b.Logger()

	router, err := b.BuildRouter()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start(b.Address())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", logging.Fields{"error": err.Error()})
			return err
		}
		return nil
	case sig := <-stop:
		logger.Info("shutting down", logging.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown failed")
	}
	return nil
}
