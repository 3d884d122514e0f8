package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prudhvinik1/odoosync/internal/database"
	"github.com/prudhvinik1/odoosync/internal/repositories"
	"github.com/prudhvinik1/odoosync/internal/services"
)

// RouterDeps are the collaborators the HTTP API is built from. SyncStatus
// may be nil, in which case /sync/status is not registered.
type RouterDeps struct {
	Store      *database.Store
	Auth       *services.AuthService
	SyncStatus repositories.SyncStatusRepository
	Logger     *slog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	contactHandler := NewContactHandler(deps.Store, deps.Logger)
	invoiceHandler := NewInvoiceHandler(deps.Store, deps.Logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Post("/token", authHandler.Token)

	router.Group(func(r chi.Router) {
		r.Use(RequireAuth(deps.Auth))

		r.Get("/contacts", contactHandler.List)
		r.Get("/contacts/{id}", contactHandler.Get)
		r.Get("/invoices", invoiceHandler.List)
		r.Get("/invoices/{id}", invoiceHandler.Get)

		if deps.SyncStatus != nil {
			r.Get("/sync/status", NewSyncStatusHandler(deps.SyncStatus, deps.Logger).Get)
		}
	})

	return router
}

// pathID parses the {id} URL parameter, answering 422 when it is not an
// integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "id must be an integer")
		return 0, false
	}
	return id, true
}

func internalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, detailInternal)
}
