package bookings

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/pkg/sdk"
)

var createAt string

var createCmd = &cobra.Command{
	Use:   "create <gig-id>",
	Short: "Book a gig session (students only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scheduledAt := time.Now().Add(24 * time.Hour)
		if createAt != "" {
			parsed, err := time.Parse(time.RFC3339, createAt)
			if err != nil {
				return fmt.Errorf("invalid --at time, expected RFC3339: %w", err)
			}
			scheduledAt = parsed
		}

		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		booking, err := client.CreateBooking(cmd.Context(), sdk.CreateBookingInput{
			GigID:       args[0],
			ScheduledAt: scheduledAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		fmt.Printf("✅ Booking %s created (%s), scheduled %s\n",
			booking.ID, booking.Status, booking.ScheduledAt.Format(time.RFC822))
		fmt.Printf("Pay for it with `eductl bookings pay %s`\n", booking.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createAt, "at", "", "Session time in RFC3339 (default: 24h from now)")
}
