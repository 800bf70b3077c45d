package role

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your current role",
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

		if !session.HasRole() {
			fmt.Println("No role selected yet; run `eductl role select student|teacher`")
			return nil
		}
		fmt.Printf("%s (%s)\n", session.Role, session.Email)
		return nil
	},
}
