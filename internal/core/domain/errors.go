package domain

import "errors"

// Domain errors represent the client's error taxonomy.
// Transport and authentication failures are handled centrally; validation
// and not-found failures propagate to the caller that issued the request.
var (
	// ErrNotFound indicates the requested resource does not exist.
	// Views render an empty placeholder rather than a hard failure.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the credential is missing, invalid or
	// expired. The API layer clears the session as a side effect.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid credential with insufficient rights.
	// Enforcement is server-side; the client only hides controls.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates a malformed mutation payload.
	// The server's detail message is surfaced verbatim to the caller.
	ErrValidation = errors.New("validation failed")

	// ErrTransport indicates the server could not be reached.
	// Callers may retry later; no layer retries automatically.
	ErrTransport = errors.New("transport failure")

	// ErrNoSession indicates an operation requiring authentication was
	// attempted while logged out.
	ErrNoSession = errors.New("not logged in")

	// ErrNoServer indicates no server URL is configured.
	ErrNoServer = errors.New("server URL not configured")
)
