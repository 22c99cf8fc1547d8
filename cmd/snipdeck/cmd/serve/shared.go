package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/snipdeck/internal/cmd/emoji"
	"github.com/agentstation/snipdeck/internal/server"
	"github.com/agentstation/snipdeck/pkg/constants"
	"github.com/agentstation/snipdeck/pkg/errors"
)

// startWithGracefulShutdown serves until ctx is canceled, then drains
// in-flight requests and stops the background services of srv.
func startWithGracefulShutdown(ctx context.Context, cmd *cobra.Command, httpServer *http.Server, srv *server.Server) error {
	out := cmd.OutOrStdout()

	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return errors.WrapIO("listen", httpServer.Addr, err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	_, _ = fmt.Fprintf(out, "Serving snippets on http://%s%s\n", ln.Addr(), srv.Config().PathPrefix)
	_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	_, _ = fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	// Streaming clients only disconnect once the hubs close.
	srvErr := srv.Shutdown(shutdownCtx)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if srvErr != nil {
		return srvErr
	}

	_, _ = fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
	return nil
}

// parsePort parses a port string, rejecting values outside 1-65535.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}
