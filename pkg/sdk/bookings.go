package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type bookingListResponse struct {
	Success bool      `json:"success"`
	Data    []Booking `json:"data"`
}

type bookingResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *Booking `json:"data"`
}

// CreateBookingInput reserves a session on a gig.
type CreateBookingInput struct {
	GigID       string    `json:"gigId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// CreateBooking creates a pending booking for the authenticated student.
func (c *Client) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	if input.GigID == "" {
		return nil, fmt.Errorf("gig ID is required")
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/bookings", nil, input)
	if err != nil {
		return nil, err
	}
	var resp bookingResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// MyBookings lists the caller's bookings: as student the ones they made, as
// teacher the ones made against their gigs.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var resp bookingListResponse
	if err := c.get(ctx, "/bookings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetBooking fetches one booking the caller participates in.
func (c *Client) GetBooking(ctx context.Context, id string) (*Booking, error) {
	var resp bookingResponse
	if err := c.get(ctx, "/bookings/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("booking %s not found", id)
	}
	return resp.Data, nil
}

// UpdateBookingStatus moves a booking through its lifecycle. Only the gig's
// teacher may do this; the backend validates the transition.
func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*Booking, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	req, err := c.newRequest(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id), nil, body)
	if err != nil {
		return nil, err
	}
	var resp bookingResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// MarkAttendance records that the caller showed up for the booked session.
func (c *Client) MarkAttendance(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/bookings/"+url.PathEscape(id)+"/attendance", nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
