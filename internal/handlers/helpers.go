package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/repository"
	"assetdesk/internal/utils"
)

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// ctxUserID returns the authenticated user's id from the request context.
func ctxUserID(r *http.Request) (uuid.UUID, bool) {
	s, ok := utils.GetString(r.Context(), middleware.CtxUserID)
	if !ok || s == "" {
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

// actingUser loads the authenticated user's profile for notification bodies.
// Returns nil when unauthenticated or the lookup fails; callers treat the
// actor as optional.
func actingUser(r *http.Request, users repository.UserRepository) *models.User {
	id, ok := ctxUserID(r)
	if !ok {
		return nil
	}
	u, err := users.GetByID(r.Context(), id)
	if err != nil {
		return nil
	}
	return u
}
