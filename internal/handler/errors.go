package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"feedblog/internal/apperr"
)

type ErrorResponse struct {
	Message string             `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError maps a classified error to its status code and body. Anything
// unclassified is logged and answered with a generic 500; internal detail
// never reaches the caller.
func WriteError(w http.ResponseWriter, err error) {
	statusCode := apperr.Status(err)

	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.Internal {
		writeJSON(w, statusCode, ErrorResponse{Message: appErr.Message, Errors: appErr.Fields})
		return
	}

	log.Printf("internal error: %v", err)
	writeJSON(w, statusCode, ErrorResponse{Message: "Internal server error."})
}
