package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type reviewListResponse struct {
	Success bool     `json:"success"`
	Data    []Review `json:"data"`
	ListPage
}

type reviewResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    *Review `json:"data"`
}

// GigReviews lists reviews for a gig, newest first.
func (c *Client) GigReviews(ctx context.Context, gigID string) ([]Review, ListPage, error) {
	var resp reviewListResponse
	if err := c.get(ctx, "/gigs/"+url.PathEscape(gigID)+"/reviews", nil, &resp); err != nil {
		return nil, ListPage{}, err
	}
	return resp.Data, resp.ListPage, nil
}

// CreateReviewInput rates a gig. One review per student per gig.
type CreateReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// CreateReview posts the authenticated student's review of a gig.
func (c *Client) CreateReview(ctx context.Context, gigID string, input CreateReviewInput) (*Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/gigs/"+url.PathEscape(gigID)+"/reviews", nil, input)
	if err != nil {
		return nil, err
	}
	var resp reviewResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// ReplyToReview posts the gig teacher's reply on a review.
func (c *Client) ReplyToReview(ctx context.Context, reviewID, reply string) (*Review, error) {
	body := struct {
		Reply string `json:"reply"`
	}{Reply: reply}

	req, err := c.newRequest(ctx, http.MethodPut, "/reviews/"+url.PathEscape(reviewID)+"/reply", nil, body)
	if err != nil {
		return nil, err
	}
	var resp reviewResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}
