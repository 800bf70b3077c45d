package role

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

// RoleCmd is the parent command for role operations
var RoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Manage your EduConnect role",
	Long:  `Commands for inspecting and selecting your role (student or teacher).`,
}

func init() {
	RoleCmd.AddCommand(showCmd)
	RoleCmd.AddCommand(selectCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}
