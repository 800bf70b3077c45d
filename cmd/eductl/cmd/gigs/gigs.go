package gigs

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

// GigsCmd is the parent command for gig operations
var GigsCmd = &cobra.Command{
	Use:   "gigs",
	Short: "Browse and manage tutoring gigs",
	Long:  `Commands for browsing the gig marketplace and, as a teacher, managing your listings.`,
}

func init() {
	GigsCmd.AddCommand(listCmd)
	GigsCmd.AddCommand(getCmd)
	GigsCmd.AddCommand(createCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}
