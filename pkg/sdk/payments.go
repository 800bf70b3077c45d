package sdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type paymentInitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
	TranID  string `json:"tran_id"`
}

type paymentStatusResponse struct {
	Success bool `json:"success"`
	Paid    bool `json:"paid"`
}

// InitPayment starts a payment for a booking and returns the gateway URL the
// student should be sent to, plus the transaction ID to reconcile later.
func (c *Client) InitPayment(ctx context.Context, gigID, bookingID string) (gatewayURL, tranID string, err error) {
	body := struct {
		GigID     string `json:"gigId"`
		BookingID string `json:"bookingId,omitempty"`
	}{GigID: gigID, BookingID: bookingID}

	req, err := c.newRequest(ctx, http.MethodPost, "/payments/init", nil, body)
	if err != nil {
		return "", "", err
	}
	var resp paymentInitResponse
	if err := c.do(req, &resp); err != nil {
		return "", "", err
	}
	if !resp.Success {
		return "", "", &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.URL, resp.TranID, nil
}

// BookingPaid reports whether payment for a booking has been confirmed.
func (c *Client) BookingPaid(ctx context.Context, bookingID string) (bool, error) {
	var resp paymentStatusResponse
	if err := c.get(ctx, "/payments/booking-status/"+url.PathEscape(bookingID), nil, &resp); err != nil {
		return false, err
	}
	return resp.Paid, nil
}

// PollBookingPaid probes the payment status of a booking every interval until
// it reports paid, the poll errors in a non-transient way, or ctx is
// canceled. Probes never overlap: the next one is scheduled only after the
// previous response arrives. Cancel the context to stop polling; there is no
// state to tear down afterwards.
func (c *Client) PollBookingPaid(ctx context.Context, bookingID string, interval time.Duration) (bool, error) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}

		paid, err := c.BookingPaid(ctx, bookingID)
		if err != nil {
			// Connectivity blips resolve themselves; keep polling through
			// them and surface everything else.
			if !IsNetworkUnreachable(err) {
				return false, err
			}
		} else if paid {
			return true, nil
		}

		timer.Reset(interval)
	}
}
