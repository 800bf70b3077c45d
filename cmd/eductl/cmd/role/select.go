package role

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

var selectCmd = &cobra.Command{
	Use:   "select <role>",
	Short: "Choose your role on EduConnect",
	Long: `Selects your role on EduConnect. The choice is sent to the backend
first; the local session only records the role after the backend confirms it,
so a failed request leaves your current role untouched.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: sdk.SelectableRoles,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		role := strings.ToLower(args[0])

		store, err := cfg.ClientProvider.Store()
		if err != nil {
			return fmt.Errorf("failed to open session store: %w", err)
		}
		session, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil || session.Email == "" {
			return fmt.Errorf("not signed in; run `eductl auth login` first")
		}

		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		user, err := sdk.SelectRole(cmd.Context(), client, store, session.Email, role)
		if err != nil {
			return fmt.Errorf("role selection failed: %w", err)
		}

		// An ack without a user payload still confirms the role.
		if user == nil {
			fmt.Printf("✅ Role set to %s for %s\n", role, session.Email)
			return nil
		}
		fmt.Printf("✅ Role set to %s for %s\n", user.Role, user.Email)
		return nil
	},
}
