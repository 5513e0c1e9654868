package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/queue"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the authentication API.
The store backend is chosen by STORE_DRIVER (mysql or memory).  With
--migrate the embedded schema is applied before the listener opens.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "Port to listen on (overrides APP_PORT)")
	serveCmd.Flags().Bool("migrate", false, "Apply database migrations on startup")
	serveCmd.Flags().Duration("shutdown-timeout", 15*time.Second, "Grace period for in-flight requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	migrate, _ := cmd.Flags().GetBool("migrate")
	grace, _ := cmd.Flags().GetDuration("shutdown-timeout")

	log := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel).With("env", cfg.Env)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, migrate, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn(context.Background(), "closing resources", "err", err)
		}
	}()

	var wg sync.WaitGroup
	if cfg.Audit.ConsumerEnabled {
		c := &queue.Consumer{URL: cfg.Audit.URL, Queue: cfg.Audit.Queue, Dir: cfg.Audit.LogDir, Log: log}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(ctx, "audit consumer stopped", "err", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", addr, "store", cfg.StoreDriver)
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "shutdown", "err", err)
	}
	wg.Wait()
	return nil
}
