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

// BunBookingRepository implements BookingRepository using Bun ORM
type BunBookingRepository struct {
	db *bun.DB
}

// NewBunBookingRepository creates a new Bun-based booking repository
func NewBunBookingRepository(db *bun.DB) *BunBookingRepository {
	return &BunBookingRepository{db: db}
}

// Create inserts a new booking
func (r *BunBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = bunx.NewUUIDv7()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	_, err := r.db.NewInsert().
		Model(booking).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking with its gig loaded
func (r *BunBookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking := new(models.Booking)
	err := r.db.NewSelect().
		Model(booking).
		Relation("Gig").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get booking by ID: %w", err)
	}
	return booking, nil
}

// GetByTranID retrieves the booking linked to a payment transaction
func (r *BunBookingRepository) GetByTranID(ctx context.Context, tranID string) (*models.Booking, error) {
	booking := new(models.Booking)
	err := r.db.NewSelect().
		Model(booking).
		Relation("Gig").
		Where("b.tran_id = ?", tranID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", tranID, ErrNotFound)
		}
		return nil, fmt.Errorf("get booking by transaction: %w", err)
	}
	return booking, nil
}

// ListByStudent retrieves all bookings made by a student, newest first
func (r *BunBookingRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.NewSelect().
		Model(&bookings).
		Relation("Gig").
		Where("b.student_id = ?", studentID).
		Order("b.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}
	return bookings, nil
}

// ListByTeacher retrieves all bookings on a teacher's gigs, newest first
func (r *BunBookingRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.NewSelect().
		Model(&bookings).
		Relation("Gig").
		Where("b.teacher_id = ?", teacherID).
		Order("b.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings by teacher: %w", err)
	}
	return bookings, nil
}

// Update updates an existing booking
func (r *BunBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	booking.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(booking).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrNotFound)
	}
	return nil
}
