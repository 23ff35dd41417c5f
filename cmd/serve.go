package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/config"
	"github.com/kozaktomas/physiognomy/internal/interpret"
	"github.com/kozaktomas/physiognomy/internal/log"
	"github.com/kozaktomas/physiognomy/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the physiognomy HTTP API.
The server exposes analysis, catalog, overlay and interpretation endpoints
under /api/v1 and Prometheus metrics under /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (defaults to WEB_PORT or 6677)")
	serveCmd.Flags().String("host", "", "Host to bind to (defaults to WEB_HOST or 127.0.0.1)")
}

// resolveServeHostPort applies the --host and --port flags over the config.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.Config) {
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	resolveServeHostPort(cmd, cfg)

	cat, err := openCatalog(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	providers, err := interpret.NewProviders(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create interpretation provider: %w", err)
	}
	interpreter := interpret.New(providers...)
	if len(providers) == 0 {
		log.Warn(log.Fields{"error": interpret.ErrNoProvider}, "interpretations will use the fixed fallback")
	}

	server := web.NewServer(cfg, cat, interpreter)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(log.Fields{"error": err}, "Error during shutdown")
		}
	}()

	fmt.Printf("Starting physiognomy API on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
