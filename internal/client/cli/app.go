package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/costestimator/internal/client/guard"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
	"github.com/dmitrijs2005/costestimator/internal/client/services"
	"github.com/dmitrijs2005/costestimator/internal/client/session"
	"github.com/dmitrijs2005/costestimator/internal/logging"
)

// sessionController is the part of *session.Controller the CLI drives.
type sessionController interface {
	Current() session.Session
	Subscribe() (<-chan session.Session, func())
	Login(ctx context.Context, email, password string) (session.Session, error)
	Register(ctx context.Context, username, email, password string) (session.Session, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (session.Session, error)
}

type estimator interface {
	Submit(ctx context.Context, in *models.EstimateInput) (*models.EstimateResult, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Result(ctx context.Context, id int64) (*models.Result, error)
}

type adminAPI interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	Users(ctx context.Context) ([]models.User, error)
}

type App struct {
	session   sessionController
	guard     *guard.Guard
	estimates estimator
	admin     adminAPI
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	// updates and last track the session between commands.
	updates <-chan session.Session
	last    session.Session
}

// NewApp wires the CLI to ctrl. Data services go through the controller's
// guarded requester so a rejected token ends the session.
func NewApp(ctrl *session.Controller, log logging.Logger) *App {
	r := ctrl.Requester()
	return &App{
		session:   ctrl,
		guard:     guard.New(guard.DefaultRoutes()),
		estimates: services.NewEstimateService(r),
		admin:     services.NewAdminService(r),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

// Run starts the REPL on stdin and blocks until the user exits or ctx is
// done.
func (a *App) Run(ctx context.Context) {
	updates, cancel := a.session.Subscribe()
	defer cancel()
	a.updates = updates
	a.last = <-updates

	printlnFn("Construction cost estimator (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

// syncSession picks up the latest session change. When a signed-in
// session ended without the logout command (the server rejected the token)
// the user is told and sent where the guard's fallback points.
func (a *App) syncSession(ctx context.Context) {
	var s session.Session
	select {
	case latest, ok := <-a.updates:
		if !ok {
			return
		}
		s = latest
	default:
		return
	}

	a.log.Debug(ctx, "session changed", "state", s.State.String())
	ended := a.last.User != nil && s.User == nil && !s.Loading()
	a.last = s
	if !ended {
		return
	}

	fmt.Fprintln(a.out, "Your session has ended.")
	if d := a.guard.Fallback(s); d.Outcome == guard.Redirect {
		a.navigate(ctx, d.RedirectTo)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().User != nil
}

func (a *App) status() string {
	s := a.session.Current()
	switch {
	case s.Loading():
		return "loading"
	case s.User == nil:
		return "anonymous"
	case s.User.IsAdmin:
		return s.User.Username + " [admin]"
	default:
		return s.User.Username
	}
}
