package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/repositories"
)

type ContactHandler struct {
	store  *database.Store
	logger *slog.Logger
}

func NewContactHandler(store *database.Store, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{store: store, logger: logger}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	conn, err := h.store.Conn(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	defer conn.Close()

	contacts, err := repositories.NewSQLContactRepository(conn, h.store.Dialect()).List(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, err := h.store.Conn(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	defer conn.Close()

	contact, err := repositories.NewSQLContactRepository(conn, h.store.Dialect()).GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}
