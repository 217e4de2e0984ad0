package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistrar/adapters"
	"myregistrar/handlers"
	"myregistrar/interfaces"
	"myregistrar/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
)

const shutdownTimeout = 10 * time.Second

// newRootCmd builds the myregistrar command tree: serve, deregister and version.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "myregistrar",
		Short: "Self-registration client for a monitoring registry",
		Long: `myregistrar runs a small HTTP service that announces itself to a monitoring registry
on startup, keeps the registration alive and deregisters on shutdown.

Configuration is read from the YAML file at CONFIG_PATH and overridden by environment
variables (REGISTRY_URL, APP_NAME, REGISTRATION_PERIOD_MS, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve /health, /registration and /metrics and keep the application registered",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runServe(ctx, stderr)
			},
		},
		&cobra.Command{
			Use:   "deregister <registry-id>",
			Short: "Remove a registration left behind by an instance that did not shut down cleanly",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDeregister(cmd.Context(), args[0], cmd.OutOrStdout(), stderr)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "myregistrar %s (commit: %s)\n", Version, Commit)
			},
		},
	)
	return root
}

// runServe starts the host HTTP server, starts the registration manager once the listener is up and, when ctx
// is done, stops the manager (deregistering) before shutting the listener down.
func runServe(ctx context.Context, logOut io.Writer) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := newLogger(logOut, config.LogLevel)
	level.Info(logger).Log("msg", "Starting myregistrar", "version", Version)
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"registry_urls", fmt.Sprint(config.Registration.RegistryURLs),
		"auto_registration", config.Registration.AutoRegistration,
		"heartbeat", config.Registration.Heartbeat,
		"period", config.Registration.Period,
	)

	app, err := service.NewApplication(config.Instance, service.LocalHost)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	level.Info(logger).Log("msg", "Application resolved", "name", app.Name, "service_url", app.ServiceURL, "health_url", app.HealthURL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var manager *service.RegistrationManager
	var scheduler *service.SerialScheduler
	{
		client := adapters.RegistryHTTP(
			config.Registration.RegistryURLs,
			&http.Client{},
			config.Registration.Username,
			config.Registration.Password,
			config.Registration.RegisterOnce,
		)
		scheduler = service.NewSerialScheduler(logger)
		manager = service.NewRegistrationManager(
			client,
			scheduler,
			service.NewTimeProvider(time.Now),
			service.NewMetrics(registry),
			app,
			config.Registration,
			logger,
		)
	}
	defer scheduler.Close()

	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(manager, logger), registry)
	}

	addr := fmt.Sprintf(":%d", config.HTTPPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	e.Listener = listener

	serverErr := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", listener.Addr().String())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var lifecycle interfaces.Lifecycle = manager
	lifecycle.Start(ctx)

	var runErr error
	select {
	case <-ctx.Done():
		level.Info(logger).Log("msg", "Shutting down server...")
	case err, ok := <-serverErr:
		if ok {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			runErr = err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	lifecycle.Stop(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
	return runErr
}

// runDeregister removes registryID from every configured registry.
func runDeregister(ctx context.Context, registryID string, out io.Writer, logOut io.Writer) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := log.With(newLogger(logOut, config.LogLevel), "component", "deregister")

	client := adapters.RegistryHTTP(
		config.Registration.RegistryURLs,
		&http.Client{},
		config.Registration.Username,
		config.Registration.Password,
		config.Registration.RegisterOnce,
	)
	callCtx, cancel := context.WithTimeout(ctx, config.Registration.Timeout)
	defer cancel()
	if err := client.Deregister(callCtx, registryID); err != nil {
		level.Error(logger).Log("msg", "failed to deregister application", "registry_id", registryID, "code", service.ToRegistryErrorCode(err), "err", err)
		return fmt.Errorf("deregister %s: %w", registryID, err)
	}
	level.Info(logger).Log("msg", "application deregistered", "registry_id", registryID)
	fmt.Fprintf(out, "deregistered %s\n", registryID)
	return nil
}
