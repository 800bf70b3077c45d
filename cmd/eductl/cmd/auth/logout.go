package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of EduConnect",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		syncer, err := cfg.ClientProvider.Syncer()
		if err != nil {
			return err
		}
		if err := syncer.SignOut(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println("Signed out successfully")
		return nil
	},
}
