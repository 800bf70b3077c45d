package gigs

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/pkg/sdk"
)

var (
	listCategory string
	listSort     string
	listPageNum  int
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List gigs on the marketplace",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		gigs, page, err := client.ListGigs(cmd.Context(), sdk.ListGigsInput{
			Category: listCategory,
			Sort:     listSort,
			Page:     listPageNum,
			Limit:    listLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list gigs: %w", err)
		}

		if len(gigs) == 0 {
			fmt.Println("No gigs found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tRATING\tTEACHER")
		for _, gig := range gigs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.1f\t%s\n",
				gig.ID, gig.Title, gig.Category, gig.Price, gig.Rating, gig.TeacherName)
		}
		w.Flush()

		if page.TotalPages > 1 {
			fmt.Printf("\nPage %d of %d (%d gigs total)\n", page.Page, page.TotalPages, page.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order (newest, price-asc, price-desc, rating)")
	listCmd.Flags().IntVar(&listPageNum, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Results per page")
}
