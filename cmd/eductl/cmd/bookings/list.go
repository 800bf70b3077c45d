package bookings

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		bookings, err := client.MyBookings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		if len(bookings) == 0 {
			fmt.Println("No bookings found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGIG\tSTATUS\tSCHEDULED\tPAID")
		for _, booking := range bookings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
				booking.ID, booking.GigTitle, booking.Status,
				booking.ScheduledAt.Format(time.RFC822), booking.Paid)
		}
		w.Flush()
		return nil
	},
}
