package wallet

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	withdrawAmount float64
	withdrawMethod string
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Request a withdrawal from your wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if withdrawAmount <= 0 {
			return fmt.Errorf("withdrawal amount must be positive")
		}

		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		tx, err := client.RequestWithdrawal(cmd.Context(), withdrawAmount, withdrawMethod)
		if err != nil {
			return fmt.Errorf("failed to request withdrawal: %w", err)
		}

		fmt.Printf("✅ Withdrawal %s requested: %.2f (%s)\n", tx.ID, tx.Amount, tx.Status)
		return nil
	},
}

func init() {
	withdrawCmd.Flags().Float64Var(&withdrawAmount, "amount", 0, "Amount to withdraw (required)")
	withdrawCmd.Flags().StringVar(&withdrawMethod, "method", "bank", "Payout method")
	withdrawCmd.MarkFlagRequired("amount")
}
