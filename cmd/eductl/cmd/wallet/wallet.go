package wallet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eductl/internal/config"
	"github.com/educonnect/educonnect/pkg/sdk"
)

// WalletCmd is the parent command for wallet operations
var WalletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "View teacher earnings and withdrawals",
	Long:  `Commands for viewing your wallet balance, transaction history, and requesting withdrawals.`,
}

func init() {
	WalletCmd.AddCommand(balanceCmd)
	WalletCmd.AddCommand(transactionsCmd)
	WalletCmd.AddCommand(withdrawCmd)
}

func sdkClient(ctx context.Context) (*sdk.Client, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.SDKClient(ctx)
}
