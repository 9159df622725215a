package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/usermodel/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler holds the response helpers shared by every handler
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps a service error onto an HTTP status.
//
// Missing records become 404 and rejected input becomes 400; anything else is logged and answered with 500.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, notFoundMessage, failureMessage string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.respondError(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, models.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(failureMessage, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, failureMessage)
	}
}

// decodeJSON reads the request body into dst
func (h *BaseHandler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// idParam parses the positive integer URL parameter "name"
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%s parameter is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}
