package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"taxonomy-browser/internal/contextutil"
	"taxonomy-browser/internal/service"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// getLogger extracts logger from context or returns fallback.
func getLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx.Value(contextutil.LoggerKey()) != nil {
		return contextutil.LoggerFromContext(ctx)
	}
	return fallback
}

func writeJSON(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// handleServiceError maps service error kinds onto HTTP status codes.
func handleServiceError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error, defaultMsg string) {
	kind := service.Kind(err)

	switch kind {
	case service.KindInvalidInput:
		logger.WarnContext(ctx, "request rejected", "kind", kind, "error", err)
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid input")
	case service.KindNotFound:
		logger.InfoContext(ctx, "resource not found", "kind", kind, "error", err)
		writeError(w, http.StatusNotFound, "Resource not found")
	case service.KindStoreUnavailable:
		logger.ErrorContext(ctx, "service error", "kind", kind, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Record store unavailable")
	default:
		logger.ErrorContext(ctx, "service error", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

// queryInt parses an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

// decodeBody decodes a bounded JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
