package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/costestimator/internal/client/guard"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
	"github.com/dmitrijs2005/costestimator/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and signs in. On success the
// dashboard is shown, like the web client does after sign-in.
func (a *App) Login(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireAnonymous) {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", s.User.Username)
	return a.showDashboard(ctx)
}

// Register prompts for username, email and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireAnonymous) {
		return nil
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created. Signed in as %s.\n", s.User.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	// the session is anonymous even when the store failed
	a.last = a.session.Current()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireUser) {
		return nil
	}
	u := a.session.Current().User
	fmt.Fprintf(a.out, "ID:       %d\nUsername: %s\nEmail:    %s\nAdmin:    %t\n", u.ID, u.Username, u.Email, u.IsAdmin)
	return nil
}

// Profile edits username and email. Blank answers keep the current value.
func (a *App) Profile(ctx context.Context) error {
	if !a.allow(ctx, guard.RequireUser) {
		return nil
	}
	u := a.session.Current().User

	username, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s]", u.Username), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", u.Email), a.out)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	if username != "" && username != u.Username {
		upd.Username = &username
	}
	if email != "" && email != u.Email {
		upd.Email = &email
	}
	if upd.Username == nil && upd.Email == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	s, err := a.session.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", s.User.Username, s.User.Email)
	return nil
}
