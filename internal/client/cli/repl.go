package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Estimate(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Result(ctx context.Context, args []string) error
	Admin(ctx context.Context) error
	syncSession(ctx context.Context)
}

// runREPL starts a simple read-eval-print loop for the estimator CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - estimate         submit a new estimate
//	  - (d)ashboard      list saved estimations
//	  - result <id>      show one estimation
//	  - whoami           show the signed-in user
//	  - profile          change username or email
//	  - admin            platform statistics (administrators only)
//	  - logout           sign out
//	  - exit | quit      leave the program
//
// Command errors are printed and the loop continues. After every command
// the session is re-checked so an ended session is reported.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ce (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: estimate, (d)ashboard, result <id>, whoami, profile, admin, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "profile":
			err = a.Profile(ctx)

		case "estimate":
			err = a.Estimate(ctx)

		case "d", "dashboard":
			err = a.Dashboard(ctx)

		case "result":
			err = a.Result(ctx, args)

		case "admin":
			err = a.Admin(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", errorMessage(err))
		}
		a.syncSession(ctx)
	}
}

func (a *App) reportError(err error) {
	printlnFn("Error:", errorMessage(err))
}

// errorMessage prefers the server's message and falls back to a short
// description of the failure class.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return client.UserMessage(err, "server unavailable, check your connection")
	case errors.Is(err, client.ErrUnauthorized):
		return client.UserMessage(err, "not authorized, please sign in again")
	case errors.Is(err, client.ErrForbidden):
		return client.UserMessage(err, "access denied")
	default:
		return client.UserMessage(err, err.Error())
	}
}
