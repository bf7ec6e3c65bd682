package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/nba-edge-service/internal/app/edge"
	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-edge-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
	"github.com/preston-bernstein/nba-edge-service/internal/providers"
)

type errorBody struct {
	Error       string   `json:"error"`
	RequestID   string   `json:"requestId,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: message, RequestID: requestID(r)}, logger)
}

// writeUnknownTeam answers 404 with "did you mean" codes for the unresolved name.
func writeUnknownTeam(w http.ResponseWriter, r *http.Request, name string, suggestions []teams.Team, logger *slog.Logger) {
	codes := make([]string, 0, len(suggestions))
	for _, t := range suggestions {
		codes = append(codes, string(t.Code()))
	}
	writeJSON(w, http.StatusNotFound, errorBody{
		Error:       "unknown team: " + name,
		RequestID:   requestID(r),
		Suggestions: codes,
	}, logger)
}

// writeServiceError maps service and upstream errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if rl, ok := providers.AsRateLimitError(err); ok {
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		}
		logging.Warn(logger, "upstream rate limited", slog.Any("err", err))
		writeError(w, r, http.StatusServiceUnavailable, "upstream rate limited", logger)
		return
	}

	switch {
	case errors.Is(err, edge.ErrUnknownTeam):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, edge.ErrSameTeam), errors.Is(err, edge.ErrInvalidDate):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, providers.ErrProviderUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "provider unavailable", logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", logger)
	default:
		logging.Warn(logger, "upstream request failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "upstream unavailable", logger)
	}
}

func requestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(requestutil.HeaderRequestID)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
