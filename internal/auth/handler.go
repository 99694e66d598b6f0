package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rogalski/gamedex/internal/httpx"
	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/store"
	"github.com/rogalski/gamedex/internal/validate"
)

// invalidCredentials is deliberately identical for an unknown email and a
// wrong password, so the response does not leak which case occurred.
const invalidCredentials = "Invalid email or password."

// PlayerStore is the subset of player persistence the login flow needs.
type PlayerStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Player, error)
}

// Handler holds the login HTTP handler.
type Handler struct {
	players PlayerStore
	tokens  *Issuer
}

func NewHandler(players PlayerStore, tokens *Issuer) *Handler {
	return &Handler{players: players, tokens: tokens}
}

// Login authenticates a player by email and password and returns a signed
// token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Credentials(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.players.FindByEmail(r.Context(), in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusBadRequest, invalidCredentials)
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if !VerifyPassword(in.Password, player.Password) {
		httpx.WriteError(w, http.StatusBadRequest, invalidCredentials)
		return
	}

	token, err := h.tokens.Issue(player.ID.Hex(), player.IsAdmin)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
