// Package auth decides which views a user may see. Checks are advisory; the
// service enforces authorization on every request.
package auth

import (
	"context"
	"sync"

	"pizza-storefront/internal/models"
)

// IsAuthorized reports whether user holds role. Only the role tag is
// compared; any object scope on the assignment is ignored.
func IsAuthorized(user *models.User, role models.Role) bool {
	if user == nil {
		return false
	}
	for _, assignment := range user.Roles {
		if assignment.Role == role {
			return true
		}
	}
	return false
}

// IsAuthorizedAny reports whether user holds at least one of roles.
func IsAuthorizedAny(user *models.User, roles ...models.Role) bool {
	for _, role := range roles {
		if IsAuthorized(user, role) {
			return true
		}
	}
	return false
}

// ViewState is the lifecycle of a protected view.
type ViewState int

const (
	Unknown ViewState = iota
	Authorized
	Unauthorized
)

func (s ViewState) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Guard tracks one protected view. It leaves Unknown exactly once, and the
// only later transition is Authorized to Unauthorized on logout.
type Guard struct {
	mu       sync.Mutex
	required []models.Role
	state    ViewState
}

// NewGuard protects a view with roles. With no roles any signed-in user is
// authorized.
func NewGuard(roles ...models.Role) *Guard {
	return &Guard{required: roles}
}

func (g *Guard) State() ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Resolve settles an Unknown guard for user and returns the current state.
func (g *Guard) Resolve(user *models.User) ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unknown {
		return g.state
	}
	if g.allows(user) {
		g.state = Authorized
	} else {
		g.state = Unauthorized
	}
	return g.state
}

// Logout drops an Authorized view back to Unauthorized.
func (g *Guard) Logout() ViewState {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Authorized {
		g.state = Unauthorized
	}
	return g.state
}

func (g *Guard) allows(user *models.User) bool {
	if user == nil {
		return false
	}
	if len(g.required) == 0 {
		return true
	}
	return IsAuthorizedAny(user, g.required...)
}

// UserGetter is the facade call guards resolve against.
type UserGetter interface {
	GetUser(ctx context.Context) (*models.User, error)
}

// ResolveSession settles g from the stored session. A failed lookup leaves
// the guard Unknown.
func ResolveSession(ctx context.Context, users UserGetter, g *Guard) (ViewState, *models.User, error) {
	user, err := users.GetUser(ctx)
	if err != nil {
		return g.State(), nil, err
	}
	return g.Resolve(user), user, nil
}
