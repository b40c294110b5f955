// Package handler contains the HTTP layer: request decoding, ownership
// scoping via the authenticated user in context, and the JSON envelopes.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jobbuddy/api/internal/service"
)

// Error envelope codes.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeTimeout            = "TIMEOUT"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

// JSON writes a success payload.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// Error writes the error envelope {"error":{"code","message"}}.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// ServiceError maps service sentinel errors onto the envelope. Anything
// unrecognized is logged and reported as an internal error without
// leaking details.
func ServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		Error(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		Error(w, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Error(w, http.StatusNotFound, CodeNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrDuplicateContact):
		Error(w, http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, service.ErrDiscoveryTimeout):
		Error(w, http.StatusRequestTimeout, CodeTimeout, err.Error())
	case errors.Is(err, service.ErrDiscoveryQuota):
		Error(w, http.StatusTooManyRequests, CodeRateLimitExceeded, err.Error())
	case errors.Is(err, service.ErrDiscoveryDisabled),
		errors.Is(err, service.ErrDiscoveryUnavailable):
		Error(w, http.StatusServiceUnavailable, CodeServiceUnavailable, err.Error())
	default:
		slog.Error("internal error", "error", err)
		Error(w, http.StatusInternalServerError, CodeInternal, "something went wrong")
	}
}

// Decode reads a JSON body into v, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Pagination holds the page metadata block echoed on every list response.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// NewPagination computes the page count for a total.
func NewPagination(page, perPage, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, Pages: pages}
}

// pageParams parses ?page and ?per_page with defaults and bounds.
func pageParams(r *http.Request) (page, perPage int) {
	page = defaultPage
	perPage = defaultPerPage

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPage = min(n, maxPerPage)
		}
	}
	return page, perPage
}
