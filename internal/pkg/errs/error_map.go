package errs

import "net/http"

// errorMap holds the template CustomError for every application error code.
var errorMap = map[int]CustomError{
	ErrRouteNotFound:    {Code: ErrRouteNotFound, Message: "Resource not found.", Status: http.StatusNotFound},
	ErrMethodNotAllowed: {Code: ErrMethodNotAllowed, Message: "Method %s is not allowed.", Status: http.StatusMethodNotAllowed},

	ErrRelayUnavailable: {Code: ErrRelayUnavailable, Message: "Chat is shutting down. Please try again later.", Status: http.StatusServiceUnavailable},

	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
