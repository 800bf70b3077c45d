package gigs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <gig-id>",
	Short: "Show a gig and its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		gig, err := client.GetGig(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get gig: %w", err)
		}

		pterm.DefaultSection.Println(gig.Title)
		pterm.Info.Printf("Category: %s\n", gig.Category)
		pterm.Info.Printf("Price: %.2f\n", gig.Price)
		pterm.Info.Printf("Teacher: %s\n", gig.TeacherName)
		if gig.Rating > 0 {
			pterm.Info.Printf("Rating: %.1f\n", gig.Rating)
		}
		if gig.Description != "" {
			fmt.Println()
			fmt.Println(gig.Description)
		}

		reviews, _, err := client.GigReviews(cmd.Context(), gig.ID)
		if err != nil {
			return fmt.Errorf("failed to get reviews: %w", err)
		}
		if len(reviews) == 0 {
			return nil
		}

		pterm.DefaultSection.Println("Reviews")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RATING\tTITLE\tCOMMENT\tREPLY")
		for _, review := range reviews {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", review.Rating, review.Title, review.Comment, review.Reply)
		}
		w.Flush()
		return nil
	},
}
