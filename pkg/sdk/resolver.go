package sdk

import "sync"

// Destination is a post-authentication navigation decision.
type Destination int

const (
	// DestNone means no navigation: the provider is still loading, or this
	// sign-in cycle has already been resolved.
	DestNone Destination = iota
	// DestSignIn sends a signed-out user to the sign-in page.
	DestSignIn
	// DestOnboarding sends a new user to the profile-completion form.
	DestOnboarding
	// DestDashboard sends an established user to their dashboard.
	DestDashboard
)

func (d Destination) String() string {
	switch d {
	case DestSignIn:
		return "sign-in"
	case DestOnboarding:
		return "onboarding"
	case DestDashboard:
		return "dashboard"
	default:
		return "none"
	}
}

// Resolver decides where a user lands after authentication completes. Each
// completed sign-in is resolved exactly once; repeated evaluations for the
// same provider user are no-ops, which is what keeps redirect loops out.
type Resolver struct {
	store SessionStore

	mu           sync.Mutex
	resolvedUser string
}

// NewResolver creates a Resolver reading session state from store.
func NewResolver(store SessionStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve evaluates the redirect decision for the given provider snapshot.
//
// Provider not loaded: DestNone. Loaded and signed out: DestSignIn. Loaded
// and signed in: onboarding when the user is neither onboarded nor holds a
// role, dashboard otherwise. Unreadable session state counts as needing
// onboarding; re-supplying profile info beats guessing a role.
func (r *Resolver) Resolve(state ProviderState) Destination {
	if !state.Loaded {
		return DestNone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !state.SignedIn {
		r.resolvedUser = ""
		return DestSignIn
	}

	if state.UserID != "" && state.UserID == r.resolvedUser {
		return DestNone
	}
	r.resolvedUser = state.UserID

	session, err := r.store.Load()
	if err != nil {
		return DestOnboarding
	}
	if !session.IsOnboarded() && !session.HasRole() {
		return DestOnboarding
	}
	return DestDashboard
}
