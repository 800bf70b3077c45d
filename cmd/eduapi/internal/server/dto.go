package server

import (
	"time"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// View types mirror the JSON shapes the SDK and webapp consume. Database
// models never leak directly; these decouple column names from the wire.

type userView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsOnboarded bool   `json:"isOnboarded"`
}

func toUserView(u *models.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Bio:         u.Bio,
		IsOnboarded: u.IsOnboarded,
	}
}

type gigView struct {
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

func toGigView(g *models.Gig) *gigView {
	if g == nil {
		return nil
	}
	view := &gigView{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Category:    g.Category,
		Price:       g.Price,
		Thumbnail:   g.Thumbnail,
		TeacherID:   g.TeacherID,
		Rating:      g.Rating,
		CreatedAt:   g.CreatedAt,
	}
	if g.Teacher != nil {
		view.TeacherName = g.Teacher.Name
	}
	return view
}

func toGigViews(gigs []models.Gig) []gigView {
	views := make([]gigView, 0, len(gigs))
	for i := range gigs {
		views = append(views, *toGigView(&gigs[i]))
	}
	return views
}

type bookingView struct {
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

func toBookingView(b *models.Booking) *bookingView {
	if b == nil {
		return nil
	}
	view := &bookingView{
		ID:          b.ID,
		GigID:       b.GigID,
		StudentID:   b.StudentID,
		TeacherID:   b.TeacherID,
		Status:      b.Status,
		ScheduledAt: b.ScheduledAt,
		RoomID:      b.RoomID,
		Paid:        b.Paid,
		Attended:    b.Attended,
		CreatedAt:   b.CreatedAt,
	}
	if b.Gig != nil {
		view.GigTitle = b.Gig.Title
	}
	return view
}

func toBookingViews(bookings []models.Booking) []bookingView {
	views := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, *toBookingView(&bookings[i]))
	}
	return views
}

type reviewView struct {
	ID        string    `json:"id"`
	GigID     string    `json:"gigId"`
	StudentID string    `json:"studentId"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Reply     string    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewView(rv *models.Review) *reviewView {
	if rv == nil {
		return nil
	}
	return &reviewView{
		ID:        rv.ID,
		GigID:     rv.GigID,
		StudentID: rv.StudentID,
		Rating:    rv.Rating,
		Title:     rv.Title,
		Comment:   rv.Comment,
		Reply:     rv.Reply,
		CreatedAt: rv.CreatedAt,
	}
}

func toReviewViews(reviews []models.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, *toReviewView(&reviews[i]))
	}
	return views
}

type transactionView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTransactionView(tx *models.WalletTransaction) *transactionView {
	if tx == nil {
		return nil
	}
	return &transactionView{
		ID:        tx.ID,
		Type:      tx.Type,
		Amount:    tx.Amount,
		Status:    tx.Status,
		Reason:    tx.Reason,
		CreatedAt: tx.CreatedAt,
	}
}

func toTransactionViews(txs []models.WalletTransaction) []transactionView {
	views := make([]transactionView, 0, len(txs))
	for i := range txs {
		views = append(views, *toTransactionView(&txs[i]))
	}
	return views
}
