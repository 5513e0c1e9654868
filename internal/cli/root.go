// Package cli holds the cobra commands of the auth server binary.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "three-level-auth",
	Short: "Password, pattern and facial image authentication server",
	Long: `three-level-auth serves a JSON HTTP API that enrolls and verifies three
independent credential factors per account: a password, a drawn pattern and
a reference facial image.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()
}
