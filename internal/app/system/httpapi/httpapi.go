// internal/app/system/httpapi/httpapi.go

// Package httpapi implements the uniform JSON response envelope used by
// every endpoint:
//
//	{ "status": 200, "message": "...", "status_code": "OK", ...payload }
//
// status_code is derived from the numeric status via a fixed lookup
// table; handlers never set it directly.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// statusCodeNames maps numeric statuses to their symbolic names.
// Anything not listed reports SERVER_ERROR.
var statusCodeNames = map[int]string{
	http.StatusOK:           "OK",
	http.StatusCreated:      "CREATED",
	http.StatusBadRequest:   "BAD_REQUEST",
	http.StatusUnauthorized: "UNAUTHORIZED",
	http.StatusForbidden:    "FORBIDDEN",
	http.StatusNotFound:     "NOT_FOUND",
	http.StatusConflict:     "CONFLICT",
	http.StatusGone:         "TOKEN_EXPIRED",
}

// StatusCodeName returns the symbolic name for a numeric status.
func StatusCodeName(status int) string {
	if name, ok := statusCodeNames[status]; ok {
		return name
	}
	return "SERVER_ERROR"
}

// Envelope is the fixed portion of every response body.
type Envelope struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	StatusCode string `json:"status_code"`
}

// Write sends the envelope plus optional payload fields. Payload keys
// are merged alongside the envelope at the top level.
func Write(w http.ResponseWriter, status int, message string, payload map[string]any) {
	body := map[string]any{
		"status":      status,
		"message":     message,
		"status_code": StatusCodeName(status),
	}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK sends a 200 envelope.
func OK(w http.ResponseWriter, message string, payload map[string]any) {
	Write(w, http.StatusOK, message, payload)
}

// Created sends a 201 envelope.
func Created(w http.ResponseWriter, message string, payload map[string]any) {
	Write(w, http.StatusCreated, message, payload)
}

// Error sends an envelope with no payload.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, message, nil)
}

var validate = validator.New()

// Decode reads a JSON request body into dst and runs struct validation.
// The returned error message is safe to surface to clients.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return errors.New("invalid or missing field: " + f.Field())
		}
		return errors.New("invalid request body")
	}
	return nil
}
