// Package api implements the HTTP adapter for the wiki server.
//
// A single Client implements the WikiAPI, AuthAPI and UsersAPI driven
// ports. Requests carry the current bearer token via an oauth2 transport;
// the token is looked up per request so login and logout take effect
// without rebuilding the client. A token-bucket limiter throttles
// outgoing requests.
//
// Server failures map onto the domain error taxonomy by status code:
// 401 unauthorized (which also fires the installed session-clear hook),
// 403 forbidden, 404 not found, 400/422 validation with the server's
// detail message verbatim. Requests that never reach the server wrap
// [domain.ErrTransport]. Nothing is retried automatically.
package api
