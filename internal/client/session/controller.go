package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
	"github.com/dmitrijs2005/costestimator/internal/client/services"
	"github.com/dmitrijs2005/costestimator/internal/client/store"
	"github.com/dmitrijs2005/costestimator/internal/common"
	"github.com/dmitrijs2005/costestimator/internal/logging"
	"golang.org/x/sync/singleflight"
)

const bootstrapKey = "bootstrap"

// Controller is the single owner of session state. Create one with New and
// share the pointer; the zero value is not usable.
type Controller struct {
	store   store.TokenStore
	channel *client.Channel
	log     logging.Logger
	now     func() time.Time

	sf singleflight.Group

	mu           sync.RWMutex
	state        State
	user         *models.User
	gen          uint64
	bootstrapped bool
	subs         map[uint64]chan Session
	nextSub      uint64
}

type Option func(*Controller)

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(st store.TokenStore, ch *client.Channel, log logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		store:   st,
		channel: ch,
		log:     log,
		now:     time.Now,
		state:   StateBootstrapping,
		subs:    make(map[uint64]chan Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns a snapshot of the session.
func (c *Controller) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel that always holds the latest session after a
// change. Intermediate states may be skipped by slow readers. The channel
// is primed with the current session and closed by cancel.
func (c *Controller) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			close(ch)
			c.mu.Unlock()
		})
	}
	return ch, cancel
}

// Bootstrap restores the session from the store. It runs once per
// controller; later calls return the current session without I/O.
func (c *Controller) Bootstrap(ctx context.Context) (Session, error) {
	return c.restore(ctx, false)
}

// Revalidate re-runs the bootstrap check against the stored token.
func (c *Controller) Revalidate(ctx context.Context) (Session, error) {
	return c.restore(ctx, true)
}

func (c *Controller) restore(ctx context.Context, force bool) (Session, error) {
	v, err, _ := c.sf.Do(bootstrapKey, func() (any, error) {
		return c.bootstrap(ctx, force)
	})
	return v.(Session), err
}

func (c *Controller) bootstrap(ctx context.Context, force bool) (Session, error) {
	c.mu.Lock()
	if c.bootstrapped && !force {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, nil
	}
	c.bootstrapped = true
	ticket := c.nextTicketLocked()
	c.setLocked(StateBootstrapping, c.user)
	c.mu.Unlock()

	token, err := c.store.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "read stored token", "error", err)
		s, cerr := c.commitAnonymous(ctx, ticket, false)
		if cerr != nil {
			return s, cerr
		}
		return s, fmt.Errorf("bootstrap error: %w", err)
	}

	if token == "" {
		c.log.Info(ctx, "no stored session")
		return c.commitAnonymous(ctx, ticket, false)
	}

	if tokenExpired(token, c.now()) {
		c.log.Info(ctx, "stored token expired")
		s, cerr := c.commitAnonymous(ctx, ticket, true)
		if cerr != nil {
			return s, cerr
		}
		return s, common.ErrTokenExpired
	}

	user, err := services.NewAuthAPI(c.channel.With(client.Credential(token))).Me(ctx)
	if err != nil {
		c.log.Warn(ctx, "stored token rejected", "error", err)
		s, cerr := c.commitAnonymous(ctx, ticket, true)
		if cerr != nil {
			return s, cerr
		}
		return s, fmt.Errorf("bootstrap error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.gen {
		return c.snapshotLocked(), ErrSuperseded
	}
	c.channel.SetCredential(token)
	c.setLocked(StateAuthenticated, user)
	c.log.Info(ctx, "session restored", "user_id", user.ID)
	return c.snapshotLocked(), nil
}

// commitAnonymous settles a bootstrap without a session. clearStore also
// removes the stored token.
func (c *Controller) commitAnonymous(ctx context.Context, ticket uint64, clearStore bool) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.gen {
		return c.snapshotLocked(), ErrSuperseded
	}
	if clearStore {
		if err := c.clearLocked(ctx); err != nil {
			c.log.Error(ctx, "clear stored token", "error", err)
		}
		return c.snapshotLocked(), nil
	}
	c.channel.SetCredential("")
	c.setLocked(StateAnonymous, nil)
	return c.snapshotLocked(), nil
}

// Login authenticates with email and password and replaces any current
// session.
func (c *Controller) Login(ctx context.Context, email, password string) (Session, error) {
	ticket := c.ticket()
	resp, err := services.NewAuthAPI(c.channel.With("")).Login(ctx, email, password)
	if err != nil {
		return c.Current(), fmt.Errorf("login error: %w", err)
	}
	return c.commitLogin(ctx, ticket, resp)
}

// Register creates an account and signs it in.
func (c *Controller) Register(ctx context.Context, username, email, password string) (Session, error) {
	ticket := c.ticket()
	resp, err := services.NewAuthAPI(c.channel.With("")).Register(ctx, username, email, password)
	if err != nil {
		return c.Current(), fmt.Errorf("register error: %w", err)
	}
	return c.commitLogin(ctx, ticket, resp)
}

func (c *Controller) commitLogin(ctx context.Context, ticket uint64, resp *models.AuthResponse) (Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.gen {
		c.log.Info(ctx, "discarding stale auth response", "user_id", resp.User.ID)
		return c.snapshotLocked(), ErrSuperseded
	}
	if err := c.store.Set(ctx, resp.AccessToken); err != nil {
		return c.snapshotLocked(), fmt.Errorf("save token error: %w", err)
	}
	c.channel.SetCredential(resp.AccessToken)
	c.bootstrapped = true
	c.setLocked(StateAuthenticated, resp.User)
	c.log.Info(ctx, "signed in", "user_id", resp.User.ID, "username", resp.User.Username)
	return c.snapshotLocked(), nil
}

// Logout ends the session. It always leaves the controller Anonymous; the
// returned error only reports a failure to clear the store.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.bootstrapped = true
	wasSignedIn := c.user != nil
	if err := c.clearLocked(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	if wasSignedIn {
		c.log.Info(ctx, "signed out")
	}
	return nil
}

// UpdateProfile changes the signed-in user's profile and replaces the
// identity with the server's copy.
func (c *Controller) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (Session, error) {
	c.mu.RLock()
	if c.state != StateAuthenticated {
		s := c.snapshotLocked()
		c.mu.RUnlock()
		return s, ErrNotAuthenticated
	}
	epoch := c.gen
	cred := c.channel.Credential()
	c.mu.RUnlock()

	user, err := services.NewAuthAPI(c.channel.With(cred)).UpdateProfile(ctx, upd)
	if err != nil {
		if client.IsAuthRejection(err) {
			c.reject(ctx, epoch)
		}
		return c.Current(), fmt.Errorf("update profile error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.gen || c.state != StateAuthenticated {
		return c.snapshotLocked(), ErrSuperseded
	}
	c.setLocked(StateAuthenticated, user)
	c.log.Info(ctx, "profile updated", "user_id", user.ID)
	return c.snapshotLocked(), nil
}

// Requester returns the request surface for authenticated views. A response
// for which client.IsAuthRejection holds ends the session, unless a newer
// transition happened since the call was issued.
func (c *Controller) Requester() client.Requester {
	return guarded{c: c}
}

type guarded struct {
	c *Controller
}

func (g guarded) Do(ctx context.Context, req *client.Request, out any) error {
	g.c.mu.RLock()
	epoch := g.c.gen
	cred := g.c.channel.Credential()
	g.c.mu.RUnlock()

	err := g.c.channel.With(cred).Do(ctx, req, out)
	if cred != "" && client.IsAuthRejection(err) {
		g.c.reject(ctx, epoch)
	}
	return err
}

// reject clears the session after the server refused its credential.
func (c *Controller) reject(ctx context.Context, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.gen || c.state != StateAuthenticated {
		return
	}
	c.gen++
	if err := c.clearLocked(ctx); err != nil {
		c.log.Error(ctx, "clear stored token", "error", err)
	}
	c.log.Warn(ctx, "session rejected by server")
}

func (c *Controller) ticket() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextTicketLocked()
}

func (c *Controller) nextTicketLocked() uint64 {
	c.gen++
	return c.gen
}

// clearLocked tears the session down in store, channel, identity order.
// The in-memory part happens even when the store fails.
func (c *Controller) clearLocked(ctx context.Context) error {
	err := c.store.Clear(ctx)
	c.channel.SetCredential("")
	c.setLocked(StateAnonymous, nil)
	return err
}

func (c *Controller) setLocked(state State, user *models.User) {
	c.state = state
	c.user = user
	s := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (c *Controller) snapshotLocked() Session {
	s := Session{State: c.state}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}
