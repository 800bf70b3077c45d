package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type walletSummaryResponse struct {
	Success bool           `json:"success"`
	Data    *WalletSummary `json:"data"`
}

type walletTransactionsResponse struct {
	Success bool                `json:"success"`
	Data    []WalletTransaction `json:"data"`
}

type walletTransactionResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    *WalletTransaction `json:"data"`
}

// WalletBalance returns the authenticated teacher's earnings summary.
func (c *Client) WalletBalance(ctx context.Context) (*WalletSummary, error) {
	var resp walletSummaryResponse
	if err := c.get(ctx, "/wallet/balance", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("empty wallet summary")
	}
	return resp.Data, nil
}

// WalletTransactions lists the caller's wallet history, optionally filtered
// by transaction type (TransactionCredit or TransactionWithdrawal).
func (c *Client) WalletTransactions(ctx context.Context, txType string) ([]WalletTransaction, error) {
	query := url.Values{}
	if txType != "" {
		query.Set("type", txType)
	}
	var resp walletTransactionsResponse
	if err := c.get(ctx, "/wallet/transactions", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// RequestWithdrawal asks to pay out amount from the caller's wallet balance.
// The withdrawal stays pending until an admin approves it.
func (c *Client) RequestWithdrawal(ctx context.Context, amount float64, method string) (*WalletTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdrawal amount must be positive")
	}
	body := struct {
		Amount float64 `json:"amount"`
		Method string  `json:"withdrawalMethod"`
	}{Amount: amount, Method: method}

	req, err := c.newRequest(ctx, http.MethodPost, "/wallet/withdraw", nil, body)
	if err != nil {
		return nil, err
	}
	var resp walletTransactionResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}
