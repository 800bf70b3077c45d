package repository

import (
	"context"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// UserRepository persists marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpsertByEmail returns the existing account for email or creates one
	// with the given name and the default role. Used by session sync.
	UpsertByEmail(ctx context.Context, email, name string) (*models.User, error)
	SetRole(ctx context.Context, id, role string) error
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// GigFilter narrows gig listings.
type GigFilter struct {
	Category  string
	TeacherID string
	Sort      string // "newest", "price-asc", "price-desc", "rating"
	Page      int
	Limit     int
}

// GigRepository persists tutoring gigs.
type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) error
	GetByID(ctx context.Context, id string) (*models.Gig, error)
	List(ctx context.Context, filter GigFilter) ([]models.Gig, int, error)
	Update(ctx context.Context, gig *models.Gig) error
	Delete(ctx context.Context, id string) error
	// ApplyRating folds a new review rating into the gig's running average.
	ApplyRating(ctx context.Context, id string, rating int) error
}

// BookingRepository persists session bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByTranID(ctx context.Context, tranID string) (*models.Booking, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Booking, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
}

// ReviewRepository persists gig reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByGig(ctx context.Context, gigID string) ([]models.Review, error)
	ExistsForStudent(ctx context.Context, gigID, studentID string) (bool, error)
	SetReply(ctx context.Context, id, reply string) error
}

// WalletRepository persists wallet transactions and derives balances.
type WalletRepository interface {
	Create(ctx context.Context, tx *models.WalletTransaction) error
	GetByID(ctx context.Context, id string) (*models.WalletTransaction, error)
	List(ctx context.Context, userID, txType string) ([]models.WalletTransaction, error)
	SetStatus(ctx context.Context, id, status string) error
	// Balance returns (available, totalEarned, pendingWithdrawals).
	Balance(ctx context.Context, userID string) (float64, float64, float64, error)
}
