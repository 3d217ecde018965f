// Package webapi holds the JSON request/response plumbing shared by the API
// feature handlers.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// maxBodyBytes caps request bodies; note text plus attachment metadata is
// small, file bytes go straight to the blob store.
const maxBodyBytes = 1 << 20

// errorResponse is the envelope every failure crosses the boundary in.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorResponse{Code: code, Message: message})
}

// Unauthenticated writes the 401 used by every operation that requires a
// signed-in caller.
func Unauthenticated(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "You must be signed in.")
}

// Forbidden writes the 403 used when the caller is not the resource's owner.
func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound writes the 404 used when an id does not resolve to a record.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// Decode reads the request body into v, rejecting unknown fields and
// oversized bodies.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
