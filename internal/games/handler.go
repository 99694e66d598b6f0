// Package games implements the /api/games resource.
package games

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/httpx"
	"github.com/rogalski/gamedex/internal/middleware"
	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/store"
)

const listCacheKey = "games:list"

// Store is the game persistence the handlers need.
type Store interface {
	Insert(ctx context.Context, g *models.Game) (*models.Game, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Replace(ctx context.Context, id primitive.ObjectID, g *models.Game) (*models.Game, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
}

// DeveloperStore checks and loads the developer a game references.
type DeveloperStore interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Developer, error)
}

// Handler holds the game HTTP handlers.
type Handler struct {
	games      Store
	developers DeveloperStore
	cache      *store.Cache
	audit      *store.AuditLog
}

func NewHandler(games Store, developers DeveloperStore, cache *store.Cache, audit *store.AuditLog) *Handler {
	return &Handler{games: games, developers: developers, cache: cache, audit: audit}
}

// List returns all games with their developer embedded.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var views []models.GameView
	if h.cache.Get(ctx, listCacheKey, &views) {
		httpx.WriteJSON(w, http.StatusOK, views)
		return
	}

	games, err := h.games.List(ctx)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	views = make([]models.GameView, 0, len(games))
	for i := range games {
		views = append(views, h.view(ctx, &games[i]))
	}
	h.cache.Set(ctx, listCacheKey, views)
	httpx.WriteJSON(w, http.StatusOK, views)
}

// Get returns a single game by path id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	game, err := h.games.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The game with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.view(r.Context(), game))
}

// Create adds a game. Its developer must exist; a missing developer is 404,
// distinguishing an unresolvable reference from a malformed one.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := middleware.Body[models.GameInput](ctx)

	devID, _ := primitive.ObjectIDFromHex(in.DeveloperID)
	ok, err := h.developers.Exists(ctx, devID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "The Developer with the given ID was not found.")
		return
	}

	premiere, _ := in.PremiereTime()
	if premiere.IsZero() {
		premiere = time.Now()
	}

	game, err := h.games.Insert(ctx, &models.Game{
		Name:        in.Name,
		Species:     in.Species,
		Premiere:    premiere,
		DeveloperID: devID,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, "create", game.ID)
	h.cache.Invalidate(ctx, listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, game)
}

// Update replaces a game's fields by path id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	in := middleware.Body[models.GameInput](ctx)

	game, err := h.games.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The game with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	devID, _ := primitive.ObjectIDFromHex(in.DeveloperID)
	ok, err := h.developers.Exists(ctx, devID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "The Developer with the given ID was not found.")
		return
	}

	game.Name = in.Name
	game.Species = in.Species
	game.DeveloperID = devID
	if premiere, _ := in.PremiereTime(); !premiere.IsZero() {
		game.Premiere = premiere
	}

	game, err = h.games.Replace(ctx, id, game)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The game with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, "update", id)
	h.cache.Invalidate(ctx, listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, game)
}

// Delete removes a game by path id. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	game, err := h.games.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The game with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(r.Context(), "delete", id)
	h.cache.Invalidate(r.Context(), listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, game)
}

func (h *Handler) view(ctx context.Context, g *models.Game) models.GameView {
	gv := models.GameView{Game: *g}
	if dev, err := h.developers.FindByID(ctx, g.DeveloperID); err == nil {
		gv.Developer = dev
	}
	return gv
}

func (h *Handler) record(ctx context.Context, action string, id primitive.ObjectID) {
	identity, _ := middleware.GetIdentity(ctx)
	if err := h.audit.Record(ctx, identity.SubjectID, action, "games", id.Hex()); err != nil {
		log.Printf("audit record error: %v", err)
	}
}
