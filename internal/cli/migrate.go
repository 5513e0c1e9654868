package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/three-level-auth/internal/config"
	"github.com/iliyamo/three-level-auth/internal/database"
	"github.com/iliyamo/three-level-auth/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded MySQL schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.StoreDriver != config.StoreMySQL {
			log := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
			log.Info(cmd.Context(), "nothing to migrate", "store", cfg.StoreDriver)
			return nil
		}

		db, err := openDB(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Migrate(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
