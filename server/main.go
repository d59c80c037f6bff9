package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"go-change-maker/change"
	"go-change-maker/config"
	"go-change-maker/http"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	nhttp "net/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "change-maker",
		Short:         "Serve the change maker HTTP API",
		Long:          "Serve an HTTP API that breaks a dollar amount into the fewest quarters, dimes, nickels and pennies.",
		Version:       http.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().String("host", "0.0.0.0", "Host to bind to (env HOST)")
	cmd.Flags().Int("port", 8080, "Port to listen on (env PORT)")
	cmd.Flags().Bool("debug", false, "Enable debug logging (env DEBUG)")
	return cmd
}

func newLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	allow := level.AllowInfo()
	if debug {
		allow = level.AllowDebug()
	}
	// ts and caller go on after the filter so leveled and With'd loggers resolve the caller
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		newLogger(os.Stderr, false).Log("msg", "loading config", "err", err)
		return err
	}

	logger := newLogger(os.Stderr, cfg.Debug)

	changeService := change.NewService()
	changeService = change.NewLoggingService(log.With(logger, "component", "change"), changeService)

	handler := http.NewServer(changeService, log.With(logger, "component", "http"))

	server := &nhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "starting change maker", "addr", cfg.Addr(), "debug", cfg.Debug)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		level.Error(logger).Log("msg", "server stopped", "err", err)
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		level.Info(logger).Log("msg", "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
		level.Error(logger).Log("msg", "shutdown failed", "err", err)
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
