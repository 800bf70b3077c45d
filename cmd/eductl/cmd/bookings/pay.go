package bookings

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	payGigID string
	payWait  bool
)

var payCmd = &cobra.Command{
	Use:   "pay <booking-id>",
	Short: "Pay for a booking through the payment gateway",
	Long: `Starts a payment for the booking and prints the gateway URL to open
in a browser. With --wait the command polls the backend until the payment is
confirmed or the command is interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := sdkClient(cmd.Context())
		if err != nil {
			return err
		}

		bookingID := args[0]
		gigID := payGigID
		if gigID == "" {
			booking, err := client.GetBooking(cmd.Context(), bookingID)
			if err != nil {
				return fmt.Errorf("failed to look up booking: %w", err)
			}
			gigID = booking.GigID
		}

		gatewayURL, tranID, err := client.InitPayment(cmd.Context(), gigID, bookingID)
		if err != nil {
			return fmt.Errorf("failed to start payment: %w", err)
		}

		fmt.Printf("Open this URL to complete the payment:\n\n  %s\n\n", gatewayURL)
		fmt.Printf("Transaction ID: %s\n", tranID)

		if !payWait {
			return nil
		}

		spinner, _ := pterm.DefaultSpinner.Start("Waiting for payment confirmation...")
		paid, err := client.PollBookingPaid(cmd.Context(), bookingID, 3*time.Second)
		if err != nil {
			spinner.Fail("Payment polling stopped")
			return err
		}
		if !paid {
			spinner.Warning("Payment not confirmed")
			return nil
		}
		spinner.Success("Payment confirmed")
		return nil
	},
}

func init() {
	payCmd.Flags().StringVar(&payGigID, "gig", "", "Gig ID (looked up from the booking when omitted)")
	payCmd.Flags().BoolVar(&payWait, "wait", false, "Poll until the payment is confirmed")
}
