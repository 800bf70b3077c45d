package wallet

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var transactionsType string

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List wallet transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		transactions, err := client.WalletTransactions(cmd.Context(), transactionsType)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}

		if len(transactions) == 0 {
			fmt.Println("No transactions found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tAMOUNT\tSTATUS\tDATE")
		for _, tx := range transactions {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
				tx.ID, tx.Type, tx.Amount, tx.Status, tx.CreatedAt.Format(time.RFC822))
		}
		w.Flush()
		return nil
	},
}

func init() {
	transactionsCmd.Flags().StringVar(&transactionsType, "type", "", "Filter by type (CREDIT or WITHDRAWAL)")
}
