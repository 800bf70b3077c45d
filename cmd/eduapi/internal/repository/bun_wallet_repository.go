package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/bunx"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// BunWalletRepository implements WalletRepository using Bun ORM
type BunWalletRepository struct {
	db *bun.DB
}

// NewBunWalletRepository creates a new Bun-based wallet repository
func NewBunWalletRepository(db *bun.DB) *BunWalletRepository {
	return &BunWalletRepository{db: db}
}

// Create inserts a new wallet transaction
func (r *BunWalletRepository) Create(ctx context.Context, tx *models.WalletTransaction) error {
	if tx.ID == "" {
		tx.ID = bunx.NewUUIDv7()
	}
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	_, err := r.db.NewInsert().
		Model(tx).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create wallet transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a wallet transaction
func (r *BunWalletRepository) GetByID(ctx context.Context, id string) (*models.WalletTransaction, error) {
	tx := new(models.WalletTransaction)
	err := r.db.NewSelect().
		Model(tx).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wallet transaction %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get wallet transaction: %w", err)
	}
	return tx, nil
}

// List retrieves a user's transactions, optionally filtered by type,
// newest first
func (r *BunWalletRepository) List(ctx context.Context, userID, txType string) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	q := r.db.NewSelect().
		Model(&txs).
		Where("user_id = ?", userID)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	err := q.Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wallet transactions: %w", err)
	}
	return txs, nil
}

// SetStatus updates a transaction's status
func (r *BunWalletRepository) SetStatus(ctx context.Context, id, status string) error {
	result, err := r.db.NewUpdate().
		Model((*models.WalletTransaction)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set transaction status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

// Balance derives the wallet summary from the transaction ledger:
// totalEarned is the sum of completed credits, pending is the sum of
// pending withdrawals, and available is earned minus everything withdrawn
// or awaiting approval.
func (r *BunWalletRepository) Balance(ctx context.Context, userID string) (float64, float64, float64, error) {
	var sums struct {
		Earned    float64
		Withdrawn float64
		Pending   float64
	}
	err := r.db.NewSelect().
		Model((*models.WalletTransaction)(nil)).
		ColumnExpr("COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount ELSE 0 END), 0) AS earned",
			models.TransactionCredit, models.TransactionCompleted).
		ColumnExpr("COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount ELSE 0 END), 0) AS withdrawn",
			models.TransactionWithdrawal, models.TransactionCompleted).
		ColumnExpr("COALESCE(SUM(CASE WHEN type = ? AND status = ? THEN amount ELSE 0 END), 0) AS pending",
			models.TransactionWithdrawal, models.TransactionPending).
		Where("user_id = ?", userID).
		Scan(ctx, &sums)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("wallet balance: %w", err)
	}

	available := sums.Earned - sums.Withdrawn - sums.Pending
	return available, sums.Earned, sums.Pending, nil
}
