package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// handleInitPayment starts a payment for a booking and returns the gateway
// URL the student should be sent to. The gateway here is simulated: visiting
// the returned URL confirms the payment, which is what the hosted gateway's
// success callback does in production.
func (s *Server) handleInitPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		GigID     string `json:"gigId"`
		BookingID string `json:"bookingId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.BookingID == "" {
		respondError(w, http.StatusBadRequest, "bookingId is required")
		return
	}

	booking, err := s.Bookings.GetByID(r.Context(), body.BookingID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if booking.StudentID != principal.UserID {
		respondError(w, http.StatusForbidden, "only the booking's student can pay for it")
		return
	}
	if booking.Paid {
		respondError(w, http.StatusBadRequest, "booking is already paid")
		return
	}

	tranID := uuid.NewString()
	booking.TranID = tranID
	if err := s.Bookings.Update(r.Context(), booking); err != nil {
		respondRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"url":     "/api/payments/gateway/" + tranID,
		"tran_id": tranID,
	})
}

// handleBookingPaymentStatus reports whether payment for a booking has been
// confirmed. The client polls this after sending the student to the gateway.
func (s *Server) handleBookingPaymentStatus(w http.ResponseWriter, r *http.Request) {
	booking, _ := s.loadParticipantBooking(w, r)
	if booking == nil {
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"paid":    booking.Paid,
	})
}

// handlePaymentGatewayCallback is the simulated gateway success callback. It
// marks the booking paid and credits the teacher's wallet. Idempotent: a
// second visit with the same transaction is a no-op.
func (s *Server) handlePaymentGatewayCallback(w http.ResponseWriter, r *http.Request) {
	tranID := chi.URLParam(r, "tranID")

	booking, err := s.Bookings.GetByTranID(r.Context(), tranID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if booking.Paid {
		writeJSON(w, http.StatusOK, envelope{"success": true, "paid": true})
		return
	}

	booking.Paid = true
	if err := s.Bookings.Update(r.Context(), booking); err != nil {
		respondRepoError(w, err)
		return
	}

	amount := 0.0
	if booking.Gig != nil {
		amount = booking.Gig.Price
	}
	credit := &models.WalletTransaction{
		UserID:    booking.TeacherID,
		Type:      models.TransactionCredit,
		Amount:    amount,
		Status:    models.TransactionCompleted,
		Reason:    "session payment",
		BookingID: booking.ID,
	}
	if err := s.Wallet.Create(r.Context(), credit); err != nil {
		// The payment is confirmed either way; the ledger entry failing is
		// an operator problem, not the student's.
		log.Printf("payment %s: credit teacher wallet: %v", tranID, err)
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "paid": true})
}
