// Package guard decides whether a view may be shown for a session.
// Decisions are pure values; the guard never touches the session.
package guard

import "github.com/dmitrijs2005/costestimator/internal/client/session"

type Requirement int

const (
	// RequireUser admits any signed-in user.
	RequireUser Requirement = iota
	// RequireAdmin admits signed-in administrators only.
	RequireAdmin
	// RequireAnonymous admits visitors without a session (login, register).
	RequireAnonymous
)

func (r Requirement) String() string {
	switch r {
	case RequireUser:
		return "user"
	case RequireAdmin:
		return "admin"
	case RequireAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

type Outcome int

const (
	// Wait means the session is still loading; show a placeholder.
	Wait Outcome = iota
	Render
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. RedirectTo is set only for Redirect.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Routes are the redirect targets.
type Routes struct {
	Login   string
	Landing string
}

// DefaultRoutes returns the login page and the dashboard.
func DefaultRoutes() Routes {
	return Routes{Login: "/login", Landing: "/dashboard"}
}

type Guard struct {
	routes Routes
}

// New returns a guard redirecting to routes. Empty fields fall back to
// DefaultRoutes.
func New(routes Routes) *Guard {
	def := DefaultRoutes()
	if routes.Login == "" {
		routes.Login = def.Login
	}
	if routes.Landing == "" {
		routes.Landing = def.Landing
	}
	return &Guard{routes: routes}
}

func (g *Guard) Routes() Routes {
	return g.routes
}

// Decide evaluates req against s.
func (g *Guard) Decide(s session.Session, req Requirement) Decision {
	if s.Loading() {
		return Decision{Outcome: Wait}
	}

	switch req {
	case RequireAnonymous:
		if s.User != nil {
			return g.redirect(g.routes.Landing)
		}
		return Decision{Outcome: Render}
	case RequireAdmin:
		if s.User == nil {
			return g.redirect(g.routes.Login)
		}
		if !s.User.IsAdmin {
			return g.redirect(g.routes.Landing)
		}
		return Decision{Outcome: Render}
	default:
		if s.User == nil {
			return g.redirect(g.routes.Login)
		}
		return Decision{Outcome: Render}
	}
}

// Fallback decides where an unknown route leads.
func (g *Guard) Fallback(s session.Session) Decision {
	switch {
	case s.Loading():
		return Decision{Outcome: Wait}
	case s.User != nil:
		return g.redirect(g.routes.Landing)
	default:
		return g.redirect(g.routes.Login)
	}
}

func (g *Guard) redirect(to string) Decision {
	return Decision{Outcome: Redirect, RedirectTo: to}
}

// Decide evaluates req against s with DefaultRoutes.
func Decide(s session.Session, req Requirement) Decision {
	return New(DefaultRoutes()).Decide(s, req)
}
