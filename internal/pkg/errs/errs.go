package errs

import (
	"fmt"
	"net/http"
	"strings"

	"relaychat/internal/pkg/logx"
)

// CustomError is the application error carrying a business code and HTTP status.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-friendly error description.
	Message string

	// Status is the HTTP status code corresponding to this error.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError from a predefined code. Details are applied
// printf-style when the message template has placeholders. Unknown codes yield ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		unknown := errorMap[ErrUnknown]
		return &unknown
	}

	customErr := templateErr
	if customErr.Status == 0 {
		customErr.Status = http.StatusOK
	}

	if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn("Details provided for error without formatting placeholders. Details ignored.", "code", code)
		}
	}

	return &customErr
}
