package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

// handleListReviews lists reviews for a gig, newest first.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	gigID := chi.URLParam(r, "id")

	// 404 for reviews of a gig that does not exist.
	if _, err := s.Gigs.GetByID(r.Context(), gigID); err != nil {
		respondRepoError(w, err)
		return
	}

	reviews, err := s.Reviews.ListByGig(r.Context(), gigID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"data":    toReviewViews(reviews),
		"total":   len(reviews),
	})
}

// handleCreateReview posts the authenticated student's review of a gig.
// One review per student per gig; the gig's running rating average is
// updated in the same request.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Comment string `json:"comment"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		respondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	gigID := chi.URLParam(r, "id")
	gig, err := s.Gigs.GetByID(r.Context(), gigID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if gig.TeacherID == principal.UserID {
		respondError(w, http.StatusBadRequest, "you cannot review your own gig")
		return
	}

	exists, err := s.Reviews.ExistsForStudent(r.Context(), gigID, principal.UserID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "you have already reviewed this gig")
		return
	}

	review := &models.Review{
		GigID:     gigID,
		StudentID: principal.UserID,
		Rating:    body.Rating,
		Title:     body.Title,
		Comment:   body.Comment,
	}
	if err := s.Reviews.Create(r.Context(), review); err != nil {
		respondRepoError(w, err)
		return
	}
	if err := s.Gigs.ApplyRating(r.Context(), gigID, body.Rating); err != nil {
		respondRepoError(w, err)
		return
	}

	respondData(w, http.StatusCreated, toReviewView(review))
}

// handleReplyToReview posts the gig teacher's reply on a review.
func (s *Server) handleReplyToReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		Reply string `json:"reply"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Reply == "" {
		respondError(w, http.StatusBadRequest, "reply is required")
		return
	}

	review, err := s.Reviews.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return
	}

	gig, err := s.Gigs.GetByID(r.Context(), review.GigID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	if gig.TeacherID != principal.UserID {
		respondError(w, http.StatusForbidden, "only the gig's teacher can reply")
		return
	}

	if err := s.Reviews.SetReply(r.Context(), review.ID, body.Reply); err != nil {
		respondRepoError(w, err)
		return
	}
	review.Reply = body.Reply
	respondData(w, http.StatusOK, toReviewView(review))
}
