/*
Package errs provides custom error types and application-level error code constants.

These codes identify HTTP-level failures of the relay both in logs and in the
JSON envelope returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrRouteNotFound indicates that no route matched the request path.
	ErrRouteNotFound = 1001

	// ErrMethodNotAllowed indicates that the route exists but not for this HTTP method.
	ErrMethodNotAllowed = 1002
)

// 4xxx: Relay Availability Errors
const (
	// ErrRelayUnavailable indicates that the chat relay has stopped accepting connections.
	ErrRelayUnavailable = 4001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
