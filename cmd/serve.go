package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lehigh-university-libraries/greeneye/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Browse the composites and results of a run",
		Long: `Serves the output directory of a run over HTTP.

The index page shows the overall precision followed by every comparison
composite. The report is also available as JSON under /api/results and
/api/samples.`,
		Example: `  # Serve ./output on default port 8888
  greeneye serve

  # Serve another run on a custom port
  greeneye serve --dir ./runs/2024-05-01 --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("output directory not found: %w", err)
			}

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handlers.New(dir).Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Results available", "dir", dir, "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&dir, "dir", "output", "Output directory of a run")

	return cmd
}
