/*
Package resp provides helpers for writing the relay's standardized JSON responses.

Every response carries a business code, a message, and optional data.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
)

// JSONResponse is the envelope returned by every HTTP endpoint of the relay.
type JSONResponse struct {
	// Code is 0 on success, otherwise an errs code.
	Code int `json:"code"`

	// Message is the client-friendly status description.
	Message string `json:"message"`

	// Data is the optional payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON marshals payload and writes it with the given status.
func RespondJSON(w http.ResponseWriter, httpStatus int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)
	if _, err := w.Write(body); err != nil {
		logx.Warn("Failed writing JSON response", "error", err.Error())
	}
}

// RespondSuccess writes data with HTTP 200.
func RespondSuccess(w http.ResponseWriter, data any) {
	RespondJSON(w, http.StatusOK, JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// RespondError writes customErr using its own HTTP status. A nil error becomes ErrUnknown.
func RespondError(w http.ResponseWriter, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, customErr.Status, JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
