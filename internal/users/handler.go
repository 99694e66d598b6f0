// Package users implements the /api/users resource (administrative accounts).
package users

import (
	"context"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/auth"
	"github.com/rogalski/gamedex/internal/httpx"
	"github.com/rogalski/gamedex/internal/middleware"
	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/store"
)

// Store is the user persistence the handlers need.
type Store interface {
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler holds the user HTTP handlers.
type Handler struct {
	users  Store
	tokens *auth.Issuer
	audit  *store.AuditLog
}

func NewHandler(users Store, tokens *auth.Issuer, audit *store.AuditLog) *Handler {
	return &Handler{users: users, tokens: tokens, audit: audit}
}

// Create registers an administrative account. The created user's token is
// returned in the x-auth-token response header.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := middleware.Body[models.UserInput](ctx)

	if _, err := h.users.FindByEmail(ctx, in.Email); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "User already registered.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := h.users.Insert(ctx, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if err := h.audit.Record(ctx, user.ID.Hex(), "create", "users", user.ID.Hex()); err != nil {
		log.Printf("audit record error: %v", err)
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	w.Header().Set(middleware.TokenHeader, token)
	httpx.WriteJSON(w, http.StatusOK, user)
}

// Me returns the caller's own record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, err := primitive.ObjectIDFromHex(identity.SubjectID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "The user with the given ID was not found.")
		return
	}
	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The user with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}
