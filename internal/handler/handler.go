package handler

import (
	"net/http"

	"feedblog/internal/apperr"
	"feedblog/internal/config"
	"feedblog/internal/database"
	"feedblog/internal/middleware"
	"feedblog/internal/service"
)

type Handlers struct {
	Auth service.AuthService
	Feed service.FeedService
	DB   *database.DB
	Cfg  *config.Config
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth: services.Auth,
		Feed: services.Feed,
		DB:   db,
		Cfg:  cfg,
	}
}

// identityID resolves the authenticated user id. Routes behind the Require
// middleware always have one; this is the handler-side backstop.
func identityID(r *http.Request) (string, error) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return "", apperr.New(apperr.Unauthenticated, "Not authenticated.")
	}
	return identity.UserID, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, apperr.Wrap(apperr.Internal, "database unreachable", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
