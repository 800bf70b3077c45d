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

// BunGigRepository implements GigRepository using Bun ORM
type BunGigRepository struct {
	db *bun.DB
}

// NewBunGigRepository creates a new Bun-based gig repository
func NewBunGigRepository(db *bun.DB) *BunGigRepository {
	return &BunGigRepository{db: db}
}

// Create inserts a new gig
func (r *BunGigRepository) Create(ctx context.Context, gig *models.Gig) error {
	if gig.ID == "" {
		gig.ID = bunx.NewUUIDv7()
	}
	now := time.Now()
	gig.CreatedAt = now
	gig.UpdatedAt = now
	_, err := r.db.NewInsert().
		Model(gig).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create gig: %w", err)
	}
	return nil
}

// GetByID retrieves a gig with its teacher loaded
func (r *BunGigRepository) GetByID(ctx context.Context, id string) (*models.Gig, error) {
	gig := new(models.Gig)
	err := r.db.NewSelect().
		Model(gig).
		Relation("Teacher").
		Where("g.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("gig %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get gig by ID: %w", err)
	}
	return gig, nil
}

// List retrieves gigs matching the filter, returning the total match count
// for pagination.
func (r *BunGigRepository) List(ctx context.Context, filter GigFilter) ([]models.Gig, int, error) {
	var gigs []models.Gig

	q := r.db.NewSelect().
		Model(&gigs).
		Relation("Teacher")

	if filter.Category != "" {
		q = q.Where("g.category = ?", filter.Category)
	}
	if filter.TeacherID != "" {
		q = q.Where("g.teacher_id = ?", filter.TeacherID)
	}

	switch filter.Sort {
	case "price-asc":
		q = q.Order("g.price ASC")
	case "price-desc":
		q = q.Order("g.price DESC")
	case "rating":
		q = q.Order("g.rating DESC")
	default:
		q = q.Order("g.created_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	total, err := q.Limit(limit).Offset((page - 1) * limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list gigs: %w", err)
	}
	return gigs, total, nil
}

// Update updates an existing gig
func (r *BunGigRepository) Update(ctx context.Context, gig *models.Gig) error {
	gig.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(gig).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update gig: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("gig %s: %w", gig.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a gig
func (r *BunGigRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().
		Model((*models.Gig)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete gig: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("gig %s: %w", id, ErrNotFound)
	}
	return nil
}

// ApplyRating folds a new review rating into the running average,
// incrementing the sample count in the same statement.
func (r *BunGigRepository) ApplyRating(ctx context.Context, id string, rating int) error {
	_, err := r.db.NewUpdate().
		Model((*models.Gig)(nil)).
		Set("rating = (rating * rating_count + ?) / (rating_count + 1.0)", rating).
		Set("rating_count = rating_count + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("apply rating: %w", err)
	}
	return nil
}
