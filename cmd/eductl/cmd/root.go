package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/cmd/auth"
	"github.com/educonnect/educonnect/cmd/eductl/cmd/bookings"
	"github.com/educonnect/educonnect/cmd/eductl/cmd/gigs"
	"github.com/educonnect/educonnect/cmd/eductl/cmd/role"
	"github.com/educonnect/educonnect/cmd/eductl/cmd/wallet"
	"github.com/educonnect/educonnect/cmd/eductl/internal/client"
	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
)

var (
	serverURL      string
	issuer         string
	clientID       string
	nonInteractive bool
)

var rootCmd = &cobra.Command{
	Use:   "eductl",
	Short: "EduConnect CLI - tutoring marketplace client",
	Long: `eductl is the command-line interface for EduConnect, a tutoring
marketplace where teachers list gigs and students book and pay for sessions.
Use it to sign in, pick your role, browse gigs, and manage bookings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("EDU_NON_INTERACTIVE") == "1" {
			nonInteractive = true
		}
		if env := os.Getenv("EDU_SERVER"); env != "" && !cmd.Flags().Changed("server") {
			serverURL = env
		}
		if env := os.Getenv("EDU_ISSUER"); env != "" && !cmd.Flags().Changed("issuer") {
			issuer = env
		}
		if env := os.Getenv("EDU_CLIENT_ID"); env != "" && !cmd.Flags().Changed("client-id") {
			clientID = env
		}

		cfg := &config.GlobalConfig{
			ServerURL:      serverURL,
			Issuer:         issuer,
			ClientID:       clientID,
			NonInteractive: nonInteractive,
			ClientProvider: client.NewProvider(serverURL, issuer, clientID),
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000/api", "EduConnect API server URL (also EDU_SERVER)")
	rootCmd.PersistentFlags().StringVar(&issuer, "issuer", "", "Identity provider issuer URL (also EDU_ISSUER)")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "eductl", "OAuth client ID registered with the identity provider (also EDU_CLIENT_ID)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also set via EDU_NON_INTERACTIVE=1)")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(role.RoleCmd)
	rootCmd.AddCommand(gigs.GigsCmd)
	rootCmd.AddCommand(bookings.BookingsCmd)
	rootCmd.AddCommand(wallet.WalletCmd)
}
