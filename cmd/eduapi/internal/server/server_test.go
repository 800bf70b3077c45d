package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/auth"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/bunx"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
	edumiddleware "github.com/educonnect/educonnect/cmd/eduapi/internal/middleware"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/migrations"
	"github.com/educonnect/educonnect/cmd/eduapi/internal/repository"
)

const testJWTSecret = "test-secret-with-enough-entropy-for-hs256"

// testEnv wires the full stack (sqlite in-memory, migrations, authn/authz,
// router) the same way the serve command does.
type testEnv struct {
	router http.Handler
	srv    *Server

	users    *repository.BunUserRepository
	gigs     *repository.BunGigRepository
	bookings *repository.BunBookingRepository
	reviews  *repository.BunReviewRepository
	wallet   *repository.BunWalletRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { bunx.Close(db) })

	ctx := context.Background()
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	env := &testEnv{
		users:    repository.NewBunUserRepository(db),
		gigs:     repository.NewBunGigRepository(db),
		bookings: repository.NewBunBookingRepository(db),
		reviews:  repository.NewBunReviewRepository(db),
		wallet:   repository.NewBunWalletRepository(db),
	}

	issuer, err := auth.NewTokenIssuer(testJWTSecret, time.Hour)
	require.NoError(t, err)

	env.srv = &Server{
		Users:    env.users,
		Gigs:     env.gigs,
		Bookings: env.bookings,
		Reviews:  env.reviews,
		Wallet:   env.wallet,
		Issuer:   issuer,
	}

	authenticator, err := edumiddleware.NewAuthenticator(issuer, env.users)
	require.NoError(t, err)

	enforcer, err := auth.InitEnforcer()
	require.NoError(t, err)

	env.router = NewRouter(RouterOptions{
		Server: env.srv,
		Middleware: []func(http.Handler) http.Handler{
			edumiddleware.Authn(authenticator),
			edumiddleware.Authz(enforcer),
		},
		OnRoleChange: func(r *http.Request) {
			if token := edumiddleware.BearerToken(r); token != "" {
				authenticator.Invalidate(token)
			}
		},
	})

	return env
}

// do sends a JSON request through the router. An empty token leaves the
// request unauthenticated.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerUser creates a password account with the given role and returns
// its bearer token and user id.
func (env *testEnv) registerUser(t *testing.T, email, role string) (token, userID string) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Test " + role,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	body := decodeResponse(t, rec)
	token, _ = body["token"].(string)
	require.NotEmpty(t, token)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	userID, _ = user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}

// makeAdmin creates an admin account directly; there is no registration
// path for admins.
func (env *testEnv) makeAdmin(t *testing.T, email string) (token, userID string) {
	t.Helper()

	user := &models.User{
		Email:       email,
		Name:        "Admin",
		Role:        models.RoleAdmin,
		IsOnboarded: true,
	}
	require.NoError(t, env.users.Create(context.Background(), user))

	token, err := env.srv.Issuer.Issue(user)
	require.NoError(t, err)
	return token, user.ID
}

// createGig posts a gig as the given teacher and returns its id.
func (env *testEnv) createGig(t *testing.T, teacherToken, title, category string, price float64) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/gigs", teacherToken, map[string]any{
		"title":       title,
		"description": "desc for " + title,
		"category":    category,
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	data, ok := decodeResponse(t, rec)["data"].(map[string]any)
	require.True(t, ok)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeResponse(t, rec)["status"])
}
