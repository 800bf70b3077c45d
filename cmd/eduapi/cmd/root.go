package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "eduapi",
	Short: "EduConnect API server",
	Long: `EduConnect API Server backs the tutoring marketplace: auth and session
sync, gigs, bookings, reviews, payments, and teacher wallets over HTTP REST.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Global flags document the environment variables; config.Load reads env.
	rootCmd.PersistentFlags().String("db-url", "", "Database connection URL (env: DATABASE_URL)")
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
