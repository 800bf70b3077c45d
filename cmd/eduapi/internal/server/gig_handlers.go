package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
)

// handleListGigs lists marketplace gigs with filtering and pagination. The
// list response carries pagination fields next to the data array.
func (s *Server) handleListGigs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := repository.GigFilter{
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Page:     page,
		Limit:    limit,
	}

	gigs, total, err := s.Gigs.List(r.Context(), filter)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	totalPages := (total + filter.Limit - 1) / filter.Limit

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"data":       toGigViews(gigs),
		"total":      total,
		"page":       filter.Page,
		"totalPages": totalPages,
	})
}

// handleGetGig returns one gig with its teacher's name resolved.
func (s *Server) handleGetGig(w http.ResponseWriter, r *http.Request) {
	gig, err := s.Gigs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toGigView(gig))
}

// handleCreateGig lists a new gig under the authenticated teacher.
func (s *Server) handleCreateGig(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Thumbnail   string  `json:"thumbnail"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if body.Price < 0 {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	gig := &models.Gig{
		TeacherID:   principal.UserID,
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		Price:       body.Price,
		Thumbnail:   body.Thumbnail,
	}
	if err := s.Gigs.Create(r.Context(), gig); err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusCreated, toGigView(gig))
}

// loadOwnedGig fetches a gig and verifies the caller owns it. Replies and
// returns nil when the request has already been answered.
func (s *Server) loadOwnedGig(w http.ResponseWriter, r *http.Request) *models.Gig {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}

	gig, err := s.Gigs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondRepoError(w, err)
		return nil
	}
	if gig.TeacherID != principal.UserID && principal.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "you do not own this gig")
		return nil
	}
	return gig
}

// handleUpdateGig replaces the mutable fields of a gig the caller owns.
func (s *Server) handleUpdateGig(w http.ResponseWriter, r *http.Request) {
	gig := s.loadOwnedGig(w, r)
	if gig == nil {
		return
	}

	var body struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		Thumbnail   string  `json:"thumbnail"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	gig.Title = body.Title
	gig.Description = body.Description
	gig.Category = body.Category
	gig.Price = body.Price
	if body.Thumbnail != "" {
		gig.Thumbnail = body.Thumbnail
	}

	if err := s.Gigs.Update(r.Context(), gig); err != nil {
		respondRepoError(w, err)
		return
	}
	respondData(w, http.StatusOK, toGigView(gig))
}

// handleDeleteGig removes a gig the caller owns.
func (s *Server) handleDeleteGig(w http.ResponseWriter, r *http.Request) {
	gig := s.loadOwnedGig(w, r)
	if gig == nil {
		return
	}

	if err := s.Gigs.Delete(r.Context(), gig.ID); err != nil {
		respondRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}
