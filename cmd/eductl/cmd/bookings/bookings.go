package bookings

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

// BookingsCmd is the parent command for booking operations
var BookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Manage session bookings",
	Long: `Commands for booking gig sessions as a student and for accepting or
rejecting bookings as a teacher.`,
}

func init() {
	BookingsCmd.AddCommand(listCmd)
	BookingsCmd.AddCommand(createCmd)
	BookingsCmd.AddCommand(statusCmd)
	BookingsCmd.AddCommand(payCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}
