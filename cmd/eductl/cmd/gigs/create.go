package gigs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/pkg/sdk"
)

var (
	createTitle       string
	createDescription string
	createCategory    string
	createPrice       float64
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "List a new gig (teachers only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		gig, err := client.CreateGig(cmd.Context(), sdk.CreateGigInput{
			Title:       createTitle,
			Description: createDescription,
			Category:    createCategory,
			Price:       createPrice,
		})
		if err != nil {
			return fmt.Errorf("failed to create gig: %w", err)
		}

		fmt.Printf("✅ Created gig %s: %s\n", gig.ID, gig.Title)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Gig title (required)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "What the gig covers")
	createCmd.Flags().StringVar(&createCategory, "category", "", "Subject category")
	createCmd.Flags().Float64Var(&createPrice, "price", 0, "Price per session")
	createCmd.MarkFlagRequired("title")
}
