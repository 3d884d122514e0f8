package handlers

import (
	"log/slog"
	"net/http"

	"github.com/prudhvinik1/odoosync/internal/repositories"
)

type SyncStatusHandler struct {
	status repositories.SyncStatusRepository
	logger *slog.Logger
}

func NewSyncStatusHandler(status repositories.SyncStatusRepository, logger *slog.Logger) *SyncStatusHandler {
	return &SyncStatusHandler{status: status, logger: logger}
}

// Get returns the latest report of each entity type the sync job published.
func (h *SyncStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	reports, err := h.status.GetAll(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	if len(reports) == 0 {
		writeError(w, http.StatusNotFound, "No sync status recorded")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
