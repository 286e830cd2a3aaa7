package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
	err   error
	syncs int
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error   { return f.record("whoami") }
func (f *fakeExec) Profile(ctx context.Context) error  { return f.record("profile") }
func (f *fakeExec) Estimate(ctx context.Context) error { return f.record("estimate") }
func (f *fakeExec) Dashboard(ctx context.Context) error {
	return f.record("dashboard")
}
func (f *fakeExec) Result(ctx context.Context, args []string) error {
	f.args = args
	return f.record("result")
}
func (f *fakeExec) Admin(ctx context.Context) error { return f.record("admin") }
func (f *fakeExec) syncSession(ctx context.Context) { f.syncs++ }

// capturePrintln replaces printlnFn for the test and returns the captured lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"estimate",
		"d",
		"dashboard",
		"result 12",
		"whoami",
		"profile",
		"admin",
		"",
		"logout",
		"register",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	require.Equal(t, []string{
		"login", "estimate", "dashboard", "dashboard", "result",
		"whoami", "profile", "admin", "logout", "register",
	}, exec.calls)
	require.Equal(t, []string{"12"}, exec.args)
	require.Equal(t, 12, exec.syncs, "one re-check per command, none for blank lines or exit")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("help\nlogin\nhelp\n")))

	var help []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands") {
			help = append(help, l)
		}
	}
	require.Len(t, help, 2)
	require.NotContains(t, help[0], "estimate")
	require.Contains(t, help[1], "estimate")
}

func TestRunREPL_UnknownCommandAndErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{err: &client.HTTPError{StatusCode: 401, Message: "Bad username or password", Err: client.ErrUnauthorized}}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("foobar\nlogin\nquit\n")))

	require.Contains(t, *lines, "Unknown command: foobar")
	require.Contains(t, *lines, "Error: Bad username or password")
	require.Contains(t, *lines, "Bye!")
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrintln(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("login\n")))
	require.Empty(t, exec.calls)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message wins", &client.HTTPError{StatusCode: 400, Message: "Username already taken", Err: client.ErrRejected}, "Username already taken"},
		{"unavailable", &client.HTTPError{Err: fmt.Errorf("%w: dial", client.ErrUnavailable)}, "server unavailable, check your connection"},
		{"unauthorized", &client.HTTPError{StatusCode: 401, Err: client.ErrUnauthorized}, "not authorized, please sign in again"},
		{"forbidden", &client.HTTPError{StatusCode: 403, Err: client.ErrForbidden}, "access denied"},
		{"plain", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}
