package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/bunx"
	edumiddleware "github.com/educonnect/educonnect/cmd/eduapi/internal/middleware"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the EduConnect API server",
	Long:  `Starts the HTTP server with the marketplace and auth endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		// Initialize repositories
		userRepo := repository.NewBunUserRepository(db)
		gigRepo := repository.NewBunGigRepository(db)
		bookingRepo := repository.NewBunBookingRepository(db)
		reviewRepo := repository.NewBunReviewRepository(db)
		walletRepo := repository.NewBunWalletRepository(db)

		srvDeps := &server.Server{
			Users:    userRepo,
			Gigs:     gigRepo,
			Bookings: bookingRepo,
			Reviews:  reviewRepo,
			Wallet:   walletRepo,
		}

		var chiMiddleware []func(http.Handler) http.Handler
		var onRoleChange func(r *http.Request)

		if cfg.AuthEnabled() {
			issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
			if err != nil {
				return fmt.Errorf("configure token issuer: %w", err)
			}
			srvDeps.Issuer = issuer

			authenticator, err := edumiddleware.NewAuthenticator(issuer, userRepo)
			if err != nil {
				return fmt.Errorf("configure authenticator: %w", err)
			}

			enforcer, err := auth.InitEnforcer()
			if err != nil {
				return fmt.Errorf("configure casbin enforcer: %w", err)
			}

			chiMiddleware = append(chiMiddleware,
				edumiddleware.Authn(authenticator),
				edumiddleware.Authz(enforcer),
			)

			// Role changes must be visible on the very next request, so drop
			// the caller's cached principal instead of waiting out the TTL.
			onRoleChange = func(r *http.Request) {
				if token := edumiddleware.BearerToken(r); token != "" {
					authenticator.Invalidate(token)
				}
			}

			log.Printf("Authentication enabled (token TTL %s)", cfg.TokenTTL)
		} else {
			log.Printf("WARNING: JWT_SECRET not set, authentication disabled")
		}

		healthHandler := func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status":"ok","auth_enabled":%t}`, cfg.AuthEnabled())
		}

		r := server.NewRouter(server.RouterOptions{
			Server:        srvDeps,
			Middleware:    chiMiddleware,
			HealthHandler: healthHandler,
			OnRoleChange:  onRoleChange,
		})

		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
