package sdk

import "time"

// Gig is a tutoring offering listed by a teacher.
type Gig struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	TeacherID   string    `json:"teacherId"`
	TeacherName string    `json:"teacherName,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Booking statuses follow the teacher-driven lifecycle: a student creates a
// pending booking, the teacher accepts or rejects it, and an accepted booking
// is completed after the session happens.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingRejected  = "rejected"
	BookingCompleted = "completed"
)

// Booking is a student's reservation of a gig session.
type Booking struct {
	ID          string    `json:"id"`
	GigID       string    `json:"gigId"`
	GigTitle    string    `json:"gigTitle,omitempty"`
	StudentID   string    `json:"studentId"`
	TeacherID   string    `json:"teacherId"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	RoomID      string    `json:"roomId,omitempty"`
	Paid        bool      `json:"paid"`
	Attended    bool      `json:"attended"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is a student's rating of a gig, optionally answered by the teacher.
type Review struct {
	ID        string    `json:"id"`
	GigID     string    `json:"gigId"`
	StudentID string    `json:"studentId"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Wallet transaction types and statuses.
const (
	TransactionCredit     = "CREDIT"
	TransactionWithdrawal = "WITHDRAWAL"

	TransactionPending   = "PENDING"
	TransactionCompleted = "COMPLETED"
	TransactionRejected  = "REJECTED"
)

// WalletSummary is a teacher's earnings overview.
type WalletSummary struct {
	Balance     float64 `json:"balance"`
	TotalEarned float64 `json:"totalEarned"`
	Pending     float64 `json:"pendingWithdrawals"`
}

// WalletTransaction is one credit or withdrawal on a wallet.
type WalletTransaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListPage carries the pagination fields the list endpoints return alongside
// their data arrays.
type ListPage struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}
