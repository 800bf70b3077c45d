package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// handleWalletBalance returns the caller's earnings summary.
func (s *Server) handleWalletBalance(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	available, earned, pending, err := s.Wallet.Balance(r.Context(), principal.UserID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]float64{
		"balance":            available,
		"totalEarned":        earned,
		"pendingWithdrawals": pending,
	})
}

// handleWalletTransactions lists the caller's wallet history, optionally
// filtered by type.
func (s *Server) handleWalletTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	txType := r.URL.Query().Get("type")
	if txType != "" && txType != models.TransactionCredit && txType != models.TransactionWithdrawal {
		respondError(w, http.StatusBadRequest, "type must be CREDIT or WITHDRAWAL")
		return
	}

	txs, err := s.Wallet.List(r.Context(), principal.UserID, txType)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toTransactionViews(txs))
}

// handleRequestWithdrawal opens a pending withdrawal against the caller's
// available balance. It stays pending until an admin resolves it.
func (s *Server) handleRequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		Amount float64 `json:"amount"`
		Method string  `json:"withdrawalMethod"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	available, _, _, err := s.Wallet.Balance(r.Context(), principal.UserID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if body.Amount > available {
		respondError(w, http.StatusBadRequest, "amount exceeds available balance")
		return
	}

	tx := &models.WalletTransaction{
		UserID: principal.UserID,
		Type:   models.TransactionWithdrawal,
		Amount: body.Amount,
		Status: models.TransactionPending,
		Method: body.Method,
	}
	if err := s.Wallet.Create(r.Context(), tx); err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusCreated, toTransactionView(tx))
}

// handleResolveWithdrawal lets an admin approve or reject a pending
// withdrawal. Approval completes the transaction, which is when the amount
// actually leaves the derived balance.
func (s *Server) handleResolveWithdrawal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Status != models.TransactionCompleted && body.Status != models.TransactionRejected {
		respondError(w, http.StatusBadRequest, "status must be COMPLETED or REJECTED")
		return
	}

	tx, err := s.Wallet.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if tx.Type != models.TransactionWithdrawal || tx.Status != models.TransactionPending {
		respondError(w, http.StatusBadRequest, "only pending withdrawals can be resolved")
		return
	}

	if err := s.Wallet.SetStatus(r.Context(), tx.ID, body.Status); err != nil {
		respondRepoError(w, err)
		return
	}
	tx.Status = body.Status
	tx.Reason = body.Reason
	respondData(w, http.StatusOK, toTransactionView(tx))
}
