package wallet

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your wallet balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		summary, err := client.WalletBalance(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get wallet balance: %w", err)
		}

		pterm.DefaultSection.Println("Wallet")
		pterm.Info.Printf("Balance: %.2f\n", summary.Balance)
		pterm.Info.Printf("Total earned: %.2f\n", summary.TotalEarned)
		if summary.Pending > 0 {
			pterm.Info.Printf("Pending withdrawals: %.2f\n", summary.Pending)
		}
		return nil
	},
}
