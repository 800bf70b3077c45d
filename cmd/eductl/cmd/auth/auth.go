package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in to EduConnect and inspecting the local session.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg, ok := config.FromContext(ctx)
	if !ok || cfg.ClientProvider == nil {
		return nil, fmt.Errorf("client provider not configured")
	}
	return cfg.ClientProvider.SDKClient(ctx)
}
