package controllers

import (
	"culinary-calc/backend/app/middleware"
	"culinary-calc/backend/app/services"
	"culinary-calc/backend/global"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}

// decodeJSON reads a bounded JSON body into dst and answers 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeJSONError(w, http.StatusBadRequest, "validation_error", strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": "))
	case errors.Is(err, services.ErrDuplicateEmail):
		writeJSONError(w, http.StatusConflict, "email_taken", "Email is already in use")
	case errors.Is(err, services.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
	default:
		global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

// requireIdentity returns the caller injected by the gateway or answers 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	id, ok := middleware.IdentityFromHeaders(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	}
	return id, ok
}

func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func activityFor(r *http.Request, userID, action, entityType, entityID string, details any) services.Activity {
	return services.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IP:         middleware.ClientIPFrom(r),
		UserAgent:  r.UserAgent(),
	}
}
