package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AliQassab/CYFoverflow-community-sub000/internal/rest"
	"github.com/AliQassab/CYFoverflow-community-sub000/internal/setup"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Server timeouts. WriteTimeout stays zero because the event stream holds
// its response open indefinitely.
const (
	ReadTimeout       = 5 * time.Second
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 30 * time.Second
)

func main() {
	cmd := &cli.Command{
		Name:   "overflow-server",
		Usage:  "Runs the community API and live event stream",
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run(ctx context.Context, _ *cli.Command) error {
	app, err := setup.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(context.Background())

	handler := rest.NewServer(app.DB, app.Hub, app.Notifier, app.Logger)

	addr := fmt.Sprintf("%s:%d", app.Config.Server.Host, app.Config.Server.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	go func() {
		app.Logger.Info("Server started", zap.String("addr", addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")

	return nil
}
