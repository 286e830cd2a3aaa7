// Package client is the authenticated request channel of the estimator
// client.
//
// # Overview
//
//  1. Transport (see HTTPClient) sends one HTTP/JSON or multipart request
//     below a fixed API base path. The bearer credential is an explicit
//     argument of every call; the transport itself holds no session state.
//  2. Channel pairs a Transport with the current credential. Its owner
//     (the session controller) reconfigures it with SetCredential; calls
//     already in flight keep the credential they started with.
//  3. Requester is the narrow interface endpoint services depend on.
//
// # Error Handling
//
// Every failure is an *HTTPError carrying the status code (0 for transport
// failures) and the server's "msg". It unwraps to one of ErrUnavailable,
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrRejected, ErrServerError or
// ErrMalformedResponse, so callers match with errors.Is.
package client
