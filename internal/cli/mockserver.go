package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gcapi "github.com/gca-community/gcapi-go"
	"github.com/gca-community/gcapi-go/internal/mockapi"
)

func newMockServerCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory GCA API",
		Long: `Serve an in-memory GCA API for local development. Requests must carry the
configured API key as a bearer token.

Example:
  gcapi mock-server --api-key dev --addr 127.0.0.1:8080
  gcapi --api-key dev --protocol http --host 127.0.0.1:8080 experience 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig()
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				return gcapi.ErrMissingAPIKey
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			return serveMock(ctx, ln, mockapi.New(cfg.APIKey,
				mockapi.WithAPIVersion(cfg.APIVersion),
				mockapi.WithLogger(log.Logger),
			))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Listen address")
	return cmd
}

// serveMock serves srv on ln until ctx is done.
func serveMock(ctx context.Context, ln net.Listener, srv *mockapi.Server) error {
	server := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("mock api listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down mock api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
