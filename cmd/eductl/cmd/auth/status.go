package auth

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the local session and backend view of it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		store, err := cfg.ClientProvider.Store()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}

		session, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("not signed in; run `eductl auth login`")
		}

		pterm.DefaultSection.Println("Session")
		pterm.Info.Printf("Email: %s\n", session.Email)
		if session.HasRole() {
			pterm.Info.Printf("Role: %s\n", session.Role)
		} else {
			pterm.Warning.Println("No role selected; run `eductl role select student|teacher`")
		}
		if !session.SyncedAt.IsZero() {
			pterm.Info.Printf("Last synced: %s\n", session.SyncedAt.Format(time.RFC1123))
		}
		if !session.HasToken() {
			pterm.Warning.Println("No token on file; the next request will resync the session")
		}

		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		me, err := client.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		pterm.DefaultSection.Println("Backend Profile")
		pterm.Info.Printf("Name: %s\n", me.Name)
		pterm.Info.Printf("Role: %s\n", me.Role)
		pterm.Info.Printf("Onboarded: %t\n", me.IsOnboarded)
		return nil
	},
}
