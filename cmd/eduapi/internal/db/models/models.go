package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Role values stored on users. "pending" means the account exists but the
// user has not chosen student or teacher yet.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RolePending = "pending"
)

// Booking lifecycle statuses.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

// Wallet transaction types and statuses.
const (
	TransactionCredit     = "CREDIT"
	TransactionWithdrawal = "WITHDRAWAL"

	TransactionPending   = "PENDING"
	TransactionCompleted = "COMPLETED"
	TransactionRejected  = "REJECTED"
)

// User is a marketplace account. Accounts created through identity-provider
// sync have no password hash; password accounts come from /auth/register.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           string     `bun:"id,pk,type:uuid"`
	Email        string     `bun:"email,notnull,unique"`
	Name         string     `bun:"name"`
	Bio          string     `bun:"bio"`
	Role         string     `bun:"role,notnull,default:'student'"`
	IsOnboarded  bool       `bun:"is_onboarded,notnull,default:false"`
	PasswordHash *string    `bun:"password_hash"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
	LastLoginAt  *time.Time `bun:"last_login_at"`
}

// Gig is a tutoring offering listed by a teacher.
type Gig struct {
	bun.BaseModel `bun:"table:gigs,alias:g"`

	ID          string    `bun:"id,pk,type:uuid"`
	TeacherID   string    `bun:"teacher_id,notnull,type:uuid"`
	Title       string    `bun:"title,notnull"`
	Description string    `bun:"description"`
	Category    string    `bun:"category"`
	Price       float64   `bun:"price,notnull"`
	Thumbnail   string    `bun:"thumbnail"`
	Rating      float64   `bun:"rating,notnull,default:0"`
	RatingCount int       `bun:"rating_count,notnull,default:0"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Teacher *User `bun:"rel:belongs-to,join:teacher_id=id"`
}

// Booking is a student's reservation of a gig session. TranID links the
// booking to an in-flight payment; Paid flips when the gateway confirms.
type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:b"`

	ID          string    `bun:"id,pk,type:uuid"`
	GigID       string    `bun:"gig_id,notnull,type:uuid"`
	StudentID   string    `bun:"student_id,notnull,type:uuid"`
	TeacherID   string    `bun:"teacher_id,notnull,type:uuid"`
	Status      string    `bun:"status,notnull,default:'pending'"`
	ScheduledAt time.Time `bun:"scheduled_at,notnull"`
	RoomID      string    `bun:"room_id"`
	TranID      string    `bun:"tran_id"`
	Paid        bool      `bun:"paid,notnull,default:false"`
	Attended    bool      `bun:"attended,notnull,default:false"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	Gig *Gig `bun:"rel:belongs-to,join:gig_id=id"`
}

// Review is a student's rating of a gig; one review per student per gig.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`

	ID        string    `bun:"id,pk,type:uuid"`
	GigID     string    `bun:"gig_id,notnull,type:uuid"`
	StudentID string    `bun:"student_id,notnull,type:uuid"`
	Rating    int       `bun:"rating,notnull"`
	Title     string    `bun:"title"`
	Comment   string    `bun:"comment"`
	Reply     string    `bun:"reply"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// WalletTransaction is one credit or withdrawal on a teacher's wallet. The
// balance is derived from completed credits minus non-rejected withdrawals,
// so there is no separate wallet row to keep in sync.
type WalletTransaction struct {
	bun.BaseModel `bun:"table:wallet_transactions,alias:wt"`

	ID        string    `bun:"id,pk,type:uuid"`
	UserID    string    `bun:"user_id,notnull,type:uuid"`
	Type      string    `bun:"type,notnull"`
	Amount    float64   `bun:"amount,notnull"`
	Status    string    `bun:"status,notnull,default:'PENDING'"`
	Reason    string    `bun:"reason"`
	Method    string    `bun:"method"`
	BookingID string    `bun:"booking_id,type:uuid"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
