package bookings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/pkg/sdk"
)

var statusCmd = &cobra.Command{
	Use:   "status <booking-id> <pending|accepted|rejected|completed>",
	Short: "Update a booking's status (teachers only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		booking, err := client.UpdateBookingStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		fmt.Printf("✅ Booking %s is now %s\n", booking.ID, booking.Status)
		if booking.Status == sdk.BookingAccepted && booking.RoomID != "" {
			fmt.Printf("Session room: %s\n", booking.RoomID)
		}
		return nil
	},
}
