// Package client talks to the tutor HTTP API on behalf of tutorctl.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI. HTTPClient
// implements it over JSON/HTTP: SignIn keeps the session token in memory and
// every later call sends it as a Bearer token.
//
// # Error Handling
//
// Transport failures and 5xx answers map to ErrUnavailable, 401 to
// ErrUnauthorized and 429 to ErrLimitReached. Other non-2xx answers are
// returned as *APIError with the server's message. Calls made before SignIn
// fail with ErrNotLoggedIn.
package client
