package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListGigsInput filters and paginates the public gig listing.
type ListGigsInput struct {
	Category string
	Sort     string
	Page     int
	Limit    int
}

type gigListResponse struct {
	Success bool  `json:"success"`
	Data    []Gig `json:"data"`
	ListPage
}

type gigResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *Gig   `json:"data"`
}

// ListGigs returns the gig catalogue page matching input.
func (c *Client) ListGigs(ctx context.Context, input ListGigsInput) ([]Gig, ListPage, error) {
	query := url.Values{}
	if input.Category != "" {
		query.Set("category", input.Category)
	}
	if input.Sort != "" {
		query.Set("sort", input.Sort)
	}
	if input.Page > 0 {
		query.Set("page", strconv.Itoa(input.Page))
	}
	if input.Limit > 0 {
		query.Set("limit", strconv.Itoa(input.Limit))
	}

	var resp gigListResponse
	if err := c.get(ctx, "/gigs", query, &resp); err != nil {
		return nil, ListPage{}, err
	}
	return resp.Data, resp.ListPage, nil
}

// GetGig fetches a single gig by ID.
func (c *Client) GetGig(ctx context.Context, id string) (*Gig, error) {
	var resp gigResponse
	if err := c.get(ctx, "/gigs/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("gig %s not found", id)
	}
	return resp.Data, nil
}

// CreateGigInput describes a new offering. Teacher identity comes from the
// bearer token, not the payload.
type CreateGigInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// CreateGig lists a new gig under the authenticated teacher.
func (c *Client) CreateGig(ctx context.Context, input CreateGigInput) (*Gig, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("gig title is required")
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/gigs", nil, input)
	if err != nil {
		return nil, err
	}
	var resp gigResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// UpdateGig replaces the mutable fields of a gig the caller owns.
func (c *Client) UpdateGig(ctx context.Context, id string, input CreateGigInput) (*Gig, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/gigs/"+url.PathEscape(id), nil, input)
	if err != nil {
		return nil, err
	}
	var resp gigResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// DeleteGig removes a gig the caller owns.
func (c *Client) DeleteGig(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/gigs/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
