package session

import "github.com/dmitrijs2005/costestimator/internal/client/models"

type State int

const (
	StateBootstrapping State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the controller. User is a copy and may
// be retained by the caller.
type Session struct {
	State State
	User  *models.User
}

// Loading reports whether the session is not settled yet.
func (s Session) Loading() bool {
	return s.State == StateBootstrapping
}

// Authenticated reports whether a validated identity is present.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}
