// Package cli provides the interactive estimator command-line client.
//
// It renders the same flow as the web pages: sign in or register, submit
// estimates, browse the dashboard and stored results, edit the profile and,
// for administrators, view platform statistics. Every command is gated by
// the access guard exactly like the matching page.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
