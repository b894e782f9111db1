package apperrors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var errorStatusMap = map[ErrorCode]int{
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrUpstream: http.StatusInternalServerError,

	ErrUnauthorized:       http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	ErrBadRequest: http.StatusBadRequest,
	ErrValidation: http.StatusBadRequest,
	ErrNotFound:   http.StatusNotFound,
	ErrConflict:   http.StatusConflict,
}

// StatusFor returns the HTTP status for a code, defaulting to 500.
func StatusFor(code ErrorCode) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Write renders an error as the uniform JSON envelope.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*AppError); ok {
		w.WriteHeader(StatusFor(appErr.Code))
		json.NewEncoder(w).Encode(ErrorResponse{
			Status:  "error",
			Message: appErr.Message,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: "Internal Server Error",
	})
}
