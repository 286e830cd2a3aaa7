package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/costestimator/internal/client/client"
	"github.com/dmitrijs2005/costestimator/internal/client/models"
	"github.com/dmitrijs2005/costestimator/internal/client/store"
	"github.com/dmitrijs2005/costestimator/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-process /api/auth + /api/data server. Tokens map to
// users; revoking a token makes every endpoint answer 401 for it.
type fakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	tokens  map[string]*models.User
	forged  map[string]bool
	calls   map[string]int
	nextID  int64
	nextTok int

	// hold, when set for a path, blocks that handler until closed.
	hold    map[string]chan struct{}
	entered map[string]chan struct{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		tokens:  make(map[string]*models.User),
		forged:  make(map[string]bool),
		calls:   make(map[string]int),
		hold:    make(map[string]chan struct{}),
		entered: make(map[string]chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", b.me)
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("POST /api/auth/register", b.register)
	mux.HandleFunc("PUT /api/auth/update", b.update)
	mux.HandleFunc("GET /api/data/dashboard", b.dashboard)
	mux.HandleFunc("POST /api/data/estimate", b.estimate)

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.calls[key]++
		hold, entered := b.hold[key], b.entered[key]
		b.mu.Unlock()
		if entered != nil {
			entered <- struct{}{}
		}
		if hold != nil {
			<-hold
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// block makes requests to "METHOD /api/path" wait until the returned
// release func is called. The entered channel receives once per request.
func (b *fakeBackend) block(key string) (entered <-chan struct{}, release func()) {
	h := make(chan struct{})
	e := make(chan struct{}, 8)
	b.mu.Lock()
	b.hold[key] = h
	b.entered[key] = e
	b.mu.Unlock()
	var once sync.Once
	return e, func() { once.Do(func() { close(h) }) }
}

func (b *fakeBackend) callCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *fakeBackend) totalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

// issue registers a valid token for u and returns it.
func (b *fakeBackend) issue(u models.User) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextTok++
	tok := fmt.Sprintf("tok-%s-%d", u.Username, b.nextTok)
	b.tokens[tok] = &u
	return tok
}

// accept makes tok valid for u.
func (b *fakeBackend) accept(tok string, u models.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[tok] = &u
}

func (b *fakeBackend) revoke(tok string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, tok)
}

// forge makes tok fail signature verification, which the JWT layer reports
// as 422 rather than 401.
func (b *fakeBackend) forge(tok string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, tok)
	b.forged[tok] = true
}

func (b *fakeBackend) isForged(r *http.Request) bool {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.forged[tok]
}

func (b *fakeBackend) userFor(r *http.Request) *models.User {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokens[tok]
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"msg": msg})
}

func (b *fakeBackend) me(w http.ResponseWriter, r *http.Request) {
	u := b.userFor(r)
	if u == nil {
		writeMsg(w, http.StatusUnauthorized, "Token has expired")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "pw" {
		writeMsg(w, http.StatusUnauthorized, "Bad username or password")
		return
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.mu.Unlock()
	u := models.User{ID: id, Username: strings.Split(req.Email, "@")[0], Email: req.Email, IsAdmin: strings.HasPrefix(req.Email, "admin")}
	writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: b.issue(u), User: &u})
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Missing fields")
		return
	}
	if req.Username == "taken" {
		writeMsg(w, http.StatusBadRequest, "Username already exists")
		return
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.mu.Unlock()
	u := models.User{ID: id, Username: req.Username, Email: req.Email}
	writeJSON(w, http.StatusCreated, models.AuthResponse{AccessToken: b.issue(u), User: &u})
}

func (b *fakeBackend) update(w http.ResponseWriter, r *http.Request) {
	u := b.userFor(r)
	if u == nil {
		writeMsg(w, http.StatusUnauthorized, "Token has expired")
		return
	}
	var req models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "Bad request")
		return
	}
	if req.Username != nil && *req.Username == "taken" {
		writeMsg(w, http.StatusBadRequest, "Username already taken")
		return
	}
	b.mu.Lock()
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	out := *u
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, models.ProfileUpdateResponse{Message: "Profile updated", User: &out})
}

func (b *fakeBackend) dashboard(w http.ResponseWriter, r *http.Request) {
	if b.isForged(r) {
		writeMsg(w, http.StatusUnprocessableEntity, "Signature verification failed")
		return
	}
	if b.userFor(r) == nil {
		writeMsg(w, http.StatusUnauthorized, "Token has expired")
		return
	}
	writeJSON(w, http.StatusOK, models.Dashboard{})
}

func (b *fakeBackend) estimate(w http.ResponseWriter, r *http.Request) {
	if b.userFor(r) == nil {
		writeMsg(w, http.StatusUnauthorized, "Token has expired")
		return
	}
	writeMsg(w, http.StatusUnprocessableEntity, "Invalid building type")
}

// failingStore wraps a MemoryStore and fails the selected operations.
type failingStore struct {
	*store.MemoryStore
	getErr, setErr, clearErr error
}

func (f *failingStore) Get(ctx context.Context) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.MemoryStore.Get(ctx)
}

func (f *failingStore) Set(ctx context.Context, token string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, token)
}

func (f *failingStore) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryStore.Clear(ctx)
}

var errDisk = errors.New("disk failure")

type fixture struct {
	backend *fakeBackend
	store   *failingStore
	channel *client.Channel
	ctrl    *Controller
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	b := newFakeBackend(t)
	hc, err := client.NewHTTPClient(b.srv.URL, "/api", client.WithTimeout(5*time.Second))
	require.NoError(t, err)

	st := &failingStore{MemoryStore: store.NewMemoryStore()}
	ch := client.NewChannel(hc)
	return &fixture{
		backend: b,
		store:   st,
		channel: ch,
		ctrl:    New(st, ch, logging.Discard(), opts...),
	}
}

func (f *fixture) storedToken(t *testing.T) string {
	t.Helper()
	tok, err := f.store.MemoryStore.Get(context.Background())
	require.NoError(t, err)
	return tok
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}
