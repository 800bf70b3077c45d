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

// BunReviewRepository implements ReviewRepository using Bun ORM
type BunReviewRepository struct {
	db *bun.DB
}

// NewBunReviewRepository creates a new Bun-based review repository
func NewBunReviewRepository(db *bun.DB) *BunReviewRepository {
	return &BunReviewRepository{db: db}
}

// Create inserts a new review
func (r *BunReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = bunx.NewUUIDv7()
	}
	review.CreatedAt = time.Now()
	_, err := r.db.NewInsert().
		Model(review).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review
func (r *BunReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	review := new(models.Review)
	err := r.db.NewSelect().
		Model(review).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get review by ID: %w", err)
	}
	return review, nil
}

// ListByGig retrieves all reviews for a gig, newest first
func (r *BunReviewRepository) ListByGig(ctx context.Context, gigID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.NewSelect().
		Model(&reviews).
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ExistsForStudent reports whether the student already reviewed the gig
func (r *BunReviewRepository) ExistsForStudent(ctx context.Context, gigID, studentID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.Review)(nil)).
		Where("gig_id = ?", gigID).
		Where("student_id = ?", studentID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check review exists: %w", err)
	}
	return exists, nil
}

// SetReply stores the teacher's reply on a review
func (r *BunReviewRepository) SetReply(ctx context.Context, id, reply string) error {
	result, err := r.db.NewUpdate().
		Model((*models.Review)(nil)).
		Set("reply = ?", reply).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set review reply: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
