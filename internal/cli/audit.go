package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/logging"
	"github.com/iliyamo/three-level-auth/internal/queue"
)

var auditConsumerCmd = &cobra.Command{
	Use:   "audit-consumer",
	Short: "Drain the audit queue into the audit log file",
	Long: `Consume authentication events from RabbitMQ and append one line per
event to <AUDIT_LOG_DIR>/auth.log.  Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadAuditConfig()
		level, format := config.LogSettings()
		log := logging.New(os.Stderr, format, level)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := &queue.Consumer{URL: cfg.URL, Queue: cfg.Queue, Dir: cfg.LogDir, Log: log}
		log.Info(ctx, "audit consumer started", "queue", cfg.Queue, "dir", cfg.LogDir)
		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditConsumerCmd)
}
