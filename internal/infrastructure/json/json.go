package json

import (
	"encoding/json"
	"errors"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MiB; SDP blobs are a few KiB at most

type errorResponse struct {
	Error string `json:"error"`
}

// Read decodes the request body into v, rejecting unknown fields and bodies
// over maxBodyBytes.
func Read(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return err
	}
	return nil
}

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the {"error": ...} body clients key off of. The wrapped
// err stays server-side; only msg crosses the wire.
func WriteError(w http.ResponseWriter, status int, err error, msg string) {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	Write(w, status, errorResponse{Error: msg})
}

// WriteValidationError maps malformed or invalid input to 400.
func WriteValidationError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusBadRequest, err, err.Error())
}

// WriteInternalError hides the cause behind a generic 500 body.
func WriteInternalError(w http.ResponseWriter, err error) {
	WriteError(w, http.StatusInternalServerError, err, "Server error")
}
