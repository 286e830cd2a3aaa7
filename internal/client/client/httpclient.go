package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/costestimator/internal/common"
	"github.com/dmitrijs2005/costestimator/internal/logging"
	"github.com/google/uuid"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

var errInvalidServerURL = errors.New("invalid server url")

// Credential is a bearer token; the empty value sends no Authorization header.
type Credential string

// Transport issues a single request with an explicitly supplied credential.
type Transport interface {
	Do(ctx context.Context, cred Credential, req *Request, out any) error
}

// HTTPClient is the HTTP/JSON Transport. It holds no credential and is not
// modified after construction, so it is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request; zero disables the per-request bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a transport for serverURL with every path prefixed
// by basePath (e.g. "/api").
func NewHTTPClient(serverURL, basePath string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidServerURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidServerURL, serverURL)
	}

	base := strings.TrimRight(serverURL, "/")
	if p := strings.Trim(basePath, "/"); p != "" {
		base += "/" + p
	}

	c := &HTTPClient{
		baseURL: base,
		http:    &http.Client{},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends req with cred and decodes a 2xx JSON body into out (when out is
// not nil). Every failure is returned as *HTTPError.
func (c *HTTPClient) Do(ctx context.Context, cred Credential, req *Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fail := func(status int, msg string, err error) error {
		return &HTTPError{Method: req.Method, Path: req.Path, StatusCode: status, Message: msg, Err: err}
	}

	body, contentType, err := req.encode()
	if err != nil {
		return fail(0, "", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return fail(0, "", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if cred != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+string(cred))
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", req.Method, "path", req.Path, "request_id", requestID, "error", err)
		return fail(0, "", fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrUnavailable, err))
	}

	c.log.Debug(ctx, "request done",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"authenticated", cred != "",
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, serverMessage(data), statusError(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if len(data) == 0 {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: empty body", ErrMalformedResponse))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return nil
}

// serverMessage extracts {"msg": "..."} from an error body.
func serverMessage(data []byte) string {
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Msg
}
