package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/costestimator/internal/client/guard"
)

// allow applies the guard for req. When the guard redirects, the target
// page is shown instead and false is returned.
func (a *App) allow(ctx context.Context, req guard.Requirement) bool {
	d := a.guard.Decide(a.session.Current(), req)
	switch d.Outcome {
	case guard.Render:
		return true
	case guard.Wait:
		fmt.Fprintln(a.out, "Session is still loading, try again in a moment.")
		return false
	default:
		a.navigate(ctx, d.RedirectTo)
		return false
	}
}

func (a *App) navigate(ctx context.Context, route string) {
	routes := a.guard.Routes()
	switch route {
	case routes.Login:
		fmt.Fprintln(a.out, "Please sign in first: use 'login' or 'register'.")
	case routes.Landing:
		if err := a.showDashboard(ctx); err != nil {
			a.reportError(err)
		}
	default:
		fmt.Fprintln(a.out, "Unknown page:", route)
	}
}
