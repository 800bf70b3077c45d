package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
)

// Server bundles the repositories and token issuer the handlers close over.
// Issuer is nil when authentication is disabled.
type Server struct {
	Users    repository.UserRepository
	Gigs     repository.GigRepository
	Bookings repository.BookingRepository
	Reviews  repository.ReviewRepository
	Wallet   repository.WalletRepository
	Issuer   *auth.TokenIssuer
}

// RouterOptions controls the construction of the API router.
type RouterOptions struct {
	Server        *Server
	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
	// OnRoleChange is invoked with the request after a successful role
	// update so the caller can invalidate cached principals.
	OnRoleChange func(r *http.Request)
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"status": "ok"})
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy, and
// all marketplace handlers mounted under /api.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	// Authn/authz arrive here from the serve command.
	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	s := opts.Server

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler)

		api.Post("/auth/clerk-sync", s.handleClerkSync)
		api.Put("/auth/update-my-role", s.handleUpdateMyRole(opts.OnRoleChange))
		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)

		api.Get("/users/me", s.handleMe)
		api.Put("/users/me", s.handleUpdateMe)

		api.Get("/gigs", s.handleListGigs)
		api.Post("/gigs", s.handleCreateGig)
		api.Get("/gigs/{id}", s.handleGetGig)
		api.Put("/gigs/{id}", s.handleUpdateGig)
		api.Delete("/gigs/{id}", s.handleDeleteGig)

		api.Get("/gigs/{id}/reviews", s.handleListReviews)
		api.Post("/gigs/{id}/reviews", s.handleCreateReview)
		api.Put("/reviews/{id}/reply", s.handleReplyToReview)

		api.Post("/bookings", s.handleCreateBooking)
		api.Get("/bookings", s.handleMyBookings)
		api.Get("/bookings/{id}", s.handleGetBooking)
		api.Put("/bookings/{id}", s.handleUpdateBookingStatus)
		api.Post("/bookings/{id}/attendance", s.handleMarkAttendance)

		api.Post("/payments/init", s.handleInitPayment)
		api.Get("/payments/booking-status/{id}", s.handleBookingPaymentStatus)
		api.Get("/payments/gateway/{tranID}", s.handlePaymentGatewayCallback)

		api.Get("/wallet/balance", s.handleWalletBalance)
		api.Get("/wallet/transactions", s.handleWalletTransactions)
		api.Post("/wallet/withdraw", s.handleRequestWithdrawal)
		api.Put("/wallet/withdrawals/{id}", s.handleResolveWithdrawal)
	})

	return r
}
