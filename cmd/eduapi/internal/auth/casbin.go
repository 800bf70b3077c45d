package auth

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

//go:embed model.conf
var casbinModelContent string

// Route policies: role, path pattern, method regex. The role column matches
// through the g() hierarchy below, so admin inherits everything teachers and
// students can do. Policy is code, not data: the marketplace's permission
// matrix is fixed, so there is nothing to persist in an adapter.
var routePolicies = [][]string{
	// Anyone signed in can read the marketplace and their own account.
	{models.RolePending, "/api/users/me", "GET|PUT"},
	{models.RolePending, "/api/gigs", "GET"},
	{models.RolePending, "/api/gigs/:id", "GET"},
	{models.RolePending, "/api/gigs/:id/reviews", "GET"},

	// Students book sessions, pay, and review.
	{models.RoleStudent, "/api/bookings", "GET|POST"},
	{models.RoleStudent, "/api/bookings/:id", "GET"},
	{models.RoleStudent, "/api/bookings/:id/attendance", "POST"},
	{models.RoleStudent, "/api/gigs/:id/reviews", "POST"},
	{models.RoleStudent, "/api/payments/init", "POST"},
	{models.RoleStudent, "/api/payments/booking-status/:id", "GET"},

	// Teachers manage gigs, act on bookings, reply to reviews, run a wallet.
	{models.RoleTeacher, "/api/gigs", "POST"},
	{models.RoleTeacher, "/api/gigs/:id", "PUT|DELETE"},
	{models.RoleTeacher, "/api/bookings", "GET"},
	{models.RoleTeacher, "/api/bookings/:id", "GET|PUT"},
	{models.RoleTeacher, "/api/bookings/:id/attendance", "POST"},
	{models.RoleTeacher, "/api/payments/booking-status/:id", "GET"},
	{models.RoleTeacher, "/api/reviews/:id/reply", "PUT"},
	{models.RoleTeacher, "/api/wallet/balance", "GET"},
	{models.RoleTeacher, "/api/wallet/transactions", "GET"},
	{models.RoleTeacher, "/api/wallet/withdraw", "POST"},

	// Admins approve withdrawals on top of full teacher/student access.
	{models.RoleAdmin, "/api/wallet/withdrawals/:id", "PUT"},
}

var roleHierarchy = [][]string{
	{models.RoleStudent, models.RolePending},
	{models.RoleTeacher, models.RolePending},
	{models.RoleAdmin, models.RoleStudent},
	{models.RoleAdmin, models.RoleTeacher},
}

// InitEnforcer creates a Casbin enforcer with the embedded RBAC model and the
// static route policy table.
func InitEnforcer() (casbin.IEnforcer, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	for _, p := range routePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}
	for _, g := range roleHierarchy {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("add role inheritance %v: %w", g, err)
		}
	}

	return enforcer, nil
}
