package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-edge-service/internal/http/requestutil"
	"github.com/preston-bernstein/nba-edge-service/internal/logging"
)

// SnapshotSyncer refreshes the schedule and rewrites the snapshot files.
type SnapshotSyncer interface {
	SyncOnce(ctx context.Context) (int, error)
}

// AdminHandler exposes admin-only endpoints (e.g., snapshot refresh).
type AdminHandler struct {
	syncer SnapshotSyncer
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(syncer SnapshotSyncer, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		syncer: syncer,
		token:  token,
		logger: logger,
	}
}

// RefreshSnapshots refreshes the schedule from upstream and rewrites the snapshots.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.syncer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", logger)
		return
	}

	files, err := h.syncer.SyncOnce(r.Context())
	if err != nil {
		logging.Warn(logger, "admin snapshot refresh failed", slog.Any("err", err))
		writeServiceError(w, r, err, logger)
		return
	}

	logging.Info(logger, "admin snapshot refresh complete", slog.Int(logging.FieldCount, files))
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"files":  files,
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
