// internal/app/system/webjson/webjson.go

// Package webjson centralizes JSON request decoding, response writing,
// and the single apperr-kind to HTTP-status mapping.
package webjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/surveyhub/internal/app/system/apperr"
)

// MaxBodySize caps JSON request bodies. File uploads use multipart
// limits instead.
const MaxBodySize = 1 << 20 // 1 MB

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Decode reads the request body into dst, returning BadRequest on
// malformed or oversized payloads.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is required")
		}
		return apperr.BadRequest("invalid JSON body")
	}
	return nil
}

// errorBody is the uniform error payload.
type errorBody struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged
// (when a logger is supplied) and surfaced as a generic 500; kinded
// errors pass their message through.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	Write(w, StatusOf(kind), errorBody{Error: apperr.Message(err)})
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindBadRequest:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
