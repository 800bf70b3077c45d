package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/bunx"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// validStatusTransitions encodes the teacher-driven booking lifecycle.
var validStatusTransitions = map[string][]string{
	models.BookingPending:  {models.BookingAccepted, models.BookingRejected},
	models.BookingAccepted: {models.BookingCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, next := range validStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// handleCreateBooking creates a pending booking for the authenticated student.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		GigID       string    `json:"gigId"`
		ScheduledAt time.Time `json:"scheduledAt"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.GigID == "" {
		respondError(w, http.StatusBadRequest, "gigId is required")
		return
	}
	if body.ScheduledAt.IsZero() {
		respondError(w, http.StatusBadRequest, "scheduledAt is required")
		return
	}

	gig, err := s.Gigs.GetByID(r.Context(), body.GigID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if gig.TeacherID == principal.UserID {
		respondError(w, http.StatusBadRequest, "you cannot book your own gig")
		return
	}

	booking := &models.Booking{
		GigID:       gig.ID,
		StudentID:   principal.UserID,
		TeacherID:   gig.TeacherID,
		Status:      models.BookingPending,
		ScheduledAt: body.ScheduledAt,
	}
	if err := s.Bookings.Create(r.Context(), booking); err != nil {
		respondRepoError(w, err)
		return
	}

	booking.Gig = gig
	respondData(w, http.StatusCreated, toBookingView(booking))
}

// handleMyBookings lists the caller's bookings: as a student the sessions
// they booked, as a teacher the sessions booked on their gigs.
func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if principal.Role == models.RoleTeacher {
		bookings, err = s.Bookings.ListByTeacher(r.Context(), principal.UserID)
	} else {
		bookings, err = s.Bookings.ListByStudent(r.Context(), principal.UserID)
	}
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toBookingViews(bookings))
}

// loadParticipantBooking fetches a booking and verifies the caller is the
// student, the teacher, or an admin. Replies and returns nil when the
// request has already been answered.
func (s *Server) loadParticipantBooking(w http.ResponseWriter, r *http.Request) (*models.Booking, *auth.Principal) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil, nil
	}

	booking, err := s.Bookings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return nil, nil
	}

	participant := booking.StudentID == principal.UserID ||
		booking.TeacherID == principal.UserID ||
		principal.Role == models.RoleAdmin
	if !participant {
		respondError(w, http.StatusForbidden, "you are not part of this booking")
		return nil, nil
	}
	return booking, &principal
}

// handleGetBooking returns one booking the caller participates in.
func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, _ := s.loadParticipantBooking(w, r)
	if booking == nil {
		return
	}
	respondData(w, http.StatusOK, toBookingView(booking))
}

// handleUpdateBookingStatus moves a booking through its lifecycle. Only the
// gig's teacher may do this. Accepting a booking allocates the session room.
func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	booking, principal := s.loadParticipantBooking(w, r)
	if booking == nil {
		return
	}
	if booking.TeacherID != principal.UserID && principal.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "only the teacher can update a booking's status")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	if !transitionAllowed(booking.Status, body.Status) {
		respondError(w, http.StatusBadRequest,
			"cannot move booking from "+booking.Status+" to "+body.Status)
		return
	}

	booking.Status = body.Status
	if body.Status == models.BookingAccepted && booking.RoomID == "" {
		booking.RoomID = bunx.NewUUIDv7()
	}

	if err := s.Bookings.Update(r.Context(), booking); err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toBookingView(booking))
}

// handleMarkAttendance records that the caller showed up for the session.
func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	booking, _ := s.loadParticipantBooking(w, r)
	if booking == nil {
		return
	}
	if booking.Status != models.BookingAccepted && booking.Status != models.BookingCompleted {
		respondError(w, http.StatusBadRequest, "attendance applies to accepted bookings only")
		return
	}

	booking.Attended = true
	if err := s.Bookings.Update(r.Context(), booking); err != nil {
		respondRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}
