package shutdownsetup

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// SetupGracefulShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server with a bounded timeout.
func SetupGracefulShutdown(server *http.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server exited gracefully")
}
