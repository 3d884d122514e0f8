package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/repositories"
)

type InvoiceHandler struct {
	store  *database.Store
	logger *slog.Logger
}

func NewInvoiceHandler(store *database.Store, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{store: store, logger: logger}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	conn, err := h.store.Conn(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	defer conn.Close()

	invoices, err := repositories.NewSQLInvoiceRepository(conn, h.store.Dialect()).List(r.Context())
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	invoice, err := repositories.NewSQLInvoiceRepository(conn, h.store.Dialect()).GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		internalError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}
