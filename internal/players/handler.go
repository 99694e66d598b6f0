// Package players implements the /api/players resource.
package players

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/auth"
	"github.com/rogalski/gamedex/internal/httpx"
	"github.com/rogalski/gamedex/internal/middleware"
	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/refs"
	"github.com/rogalski/gamedex/internal/store"
)

// Store is the player persistence the handlers need.
type Store interface {
	Insert(ctx context.Context, p *models.Player) (*models.Player, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
	FindByEmail(ctx context.Context, email string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Replace(ctx context.Context, id primitive.ObjectID, p *models.Player) (*models.Player, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
}

// GameStore resolves and loads the games a player references.
type GameStore interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
}

// DeveloperStore loads the developer referenced by an embedded game.
type DeveloperStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Developer, error)
}

// Handler holds the player HTTP handlers.
type Handler struct {
	players    Store
	games      GameStore
	developers DeveloperStore
	tokens     *auth.Issuer
	audit      *store.AuditLog
}

func NewHandler(players Store, games GameStore, developers DeveloperStore, tokens *auth.Issuer, audit *store.AuditLog) *Handler {
	return &Handler{players: players, games: games, developers: developers, tokens: tokens, audit: audit}
}

// writeResponse is the shape returned by Create and the update routes: the
// persisted record plus any referenced game ids that could not be resolved.
// Unresolvable ids are a soft failure; the write itself succeeds.
type writeResponse struct {
	*models.Player
	MissingGameIDs []primitive.ObjectID `json:"missingGameIds,omitempty"`
}

// List returns all players, games and developers embedded, passwords omitted.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	views := make([]models.PlayerView, 0, len(players))
	for i := range players {
		views = append(views, h.view(r.Context(), &players[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

// Get returns a single player by path id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	player, err := h.players.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.view(r.Context(), player))
}

// Create registers a new player. Registration is public; the created
// player's token is returned in the x-auth-token response header.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := middleware.Body[models.PlayerInput](ctx)

	if _, err := h.players.FindByEmail(ctx, in.Email); err == nil {
		httpx.WriteError(w, http.StatusBadRequest, "Player already registered.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	res, err := refs.Resolve(ctx, h.games, toObjectIDs(in.GameIDs))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	player := &models.Player{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Age:      in.Age,
		Gender:   in.Gender,
		GameIDs:  nonNil(res.Resolved),
	}
	player, err = h.players.Insert(ctx, player)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, player.ID.Hex(), "create", player.ID)

	token, err := h.tokens.Issue(player.ID.Hex(), player.IsAdmin)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	w.Header().Set(middleware.TokenHeader, token)
	httpx.WriteJSON(w, http.StatusOK, writeResponse{Player: player, MissingGameIDs: res.Missing})
}

// Update modifies a player by path id. Only the owner or an admin may do so.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	identity, _ := middleware.GetIdentity(r.Context())
	if identity.SubjectID != id.Hex() && !identity.IsAdmin {
		httpx.WriteError(w, http.StatusForbidden, "Access denied.")
		return
	}
	h.update(w, r, id, identity)
}

// GetMyAccount returns the caller's own record.
func (h *Handler) GetMyAccount(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, err := primitive.ObjectIDFromHex(identity.SubjectID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
		return
	}
	player, err := h.players.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.view(r.Context(), player))
}

// UpdateMyAccount modifies the caller's own record.
func (h *Handler) UpdateMyAccount(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, err := primitive.ObjectIDFromHex(identity.SubjectID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
		return
	}
	h.update(w, r, id, identity)
}

// Delete removes a player by path id. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	h.remove(w, r, id)
}

// DeleteMyAccount removes the caller's own record. Admin only.
func (h *Handler) DeleteMyAccount(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())
	id, err := primitive.ObjectIDFromHex(identity.SubjectID)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
		return
	}
	h.remove(w, r, id)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id primitive.ObjectID, identity auth.Identity) {
	ctx := r.Context()
	in := middleware.Body[models.PlayerUpdate](ctx)

	player, err := h.players.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	if in.Email != nil && *in.Email != player.Email {
		existing, err := h.players.FindByEmail(ctx, *in.Email)
		if err == nil && existing.ID != id {
			httpx.WriteError(w, http.StatusBadRequest, "Player already registered.")
			return
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
		player.Email = *in.Email
	}
	if in.Name != nil {
		player.Name = *in.Name
	}
	if in.Age != nil {
		player.Age = *in.Age
	}
	if in.Gender != nil {
		player.Gender = *in.Gender
	}

	var missing []primitive.ObjectID
	if in.GameIDs != nil {
		res, err := refs.Resolve(ctx, h.games, toObjectIDs(*in.GameIDs))
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "database error")
			return
		}
		player.GameIDs = nonNil(res.Resolved)
		missing = res.Missing
	}

	player, err = h.players.Replace(ctx, id, player)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, identity.SubjectID, "update", id)

	httpx.WriteJSON(w, http.StatusOK, writeResponse{Player: player, MissingGameIDs: missing})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) {
	player, err := h.players.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The player with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	identity, _ := middleware.GetIdentity(r.Context())
	h.record(r.Context(), identity.SubjectID, "delete", id)
	httpx.WriteJSON(w, http.StatusOK, player)
}

// view expands a player's game references, and each game's developer, for
// read responses. Dangling references are skipped rather than failing the
// read.
func (h *Handler) view(ctx context.Context, p *models.Player) models.PlayerView {
	games := make([]models.GameView, 0, len(p.GameIDs))
	for _, gid := range p.GameIDs {
		game, err := h.games.FindByID(ctx, gid)
		if err != nil {
			continue
		}
		gv := models.GameView{Game: *game}
		if dev, err := h.developers.FindByID(ctx, game.DeveloperID); err == nil {
			gv.Developer = dev
		}
		games = append(games, gv)
	}
	return models.PlayerView{Player: *p, Games: games}
}

func (h *Handler) record(ctx context.Context, actor, action string, id primitive.ObjectID) {
	if err := h.audit.Record(ctx, actor, action, "players", id.Hex()); err != nil {
		log.Printf("audit record error: %v", err)
	}
}

// toObjectIDs converts id strings that already passed the schema check.
func toObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, s := range ids {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			continue
		}
		out = append(out, oid)
	}
	return out
}

func nonNil(ids []primitive.ObjectID) []primitive.ObjectID {
	if ids == nil {
		return []primitive.ObjectID{}
	}
	return ids
}
