package client

import (
	"context"
	"sync/atomic"
)

// Requester is the request surface consumed by endpoint services.
type Requester interface {
	Do(ctx context.Context, req *Request, out any) error
}

// Channel is the authenticated request channel: a Transport plus the
// current credential. The credential is read once when a call starts and
// passed into request construction, so SetCredential affects only calls
// issued after it returns.
type Channel struct {
	transport Transport
	cred      atomic.Pointer[Credential]
}

func NewChannel(t Transport) *Channel {
	ch := &Channel{transport: t}
	ch.SetCredential("")
	return ch
}

// SetCredential replaces the credential for subsequent calls; "" makes them
// unauthenticated.
func (ch *Channel) SetCredential(token string) {
	c := Credential(token)
	ch.cred.Store(&c)
}

// Credential returns the credential new calls will carry.
func (ch *Channel) Credential() Credential {
	return *ch.cred.Load()
}

// Authenticated reports whether new calls will carry a credential.
func (ch *Channel) Authenticated() bool {
	return ch.Credential() != ""
}

func (ch *Channel) Do(ctx context.Context, req *Request, out any) error {
	return ch.transport.Do(ctx, ch.Credential(), req, out)
}

// With returns a Requester pinned to cred regardless of later
// SetCredential calls.
func (ch *Channel) With(cred Credential) Requester {
	return pinned{transport: ch.transport, cred: cred}
}

type pinned struct {
	transport Transport
	cred      Credential
}

func (p pinned) Do(ctx context.Context, req *Request, out any) error {
	return p.transport.Do(ctx, p.cred, req, out)
}
