// Package developers implements the /api/developers resource.
package developers

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

const listCacheKey = "developers:list"

// Store is the developer persistence the handlers need.
type Store interface {
	Insert(ctx context.Context, d *models.Developer) (*models.Developer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Developer, error)
	List(ctx context.Context, sortField string) ([]models.Developer, error)
	Replace(ctx context.Context, id primitive.ObjectID, d *models.Developer) (*models.Developer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Developer, error)
}

// Handler holds the developer HTTP handlers.
type Handler struct {
	developers Store
	cache      *store.Cache
	audit      *store.AuditLog
}

func NewHandler(developers Store, cache *store.Cache, audit *store.AuditLog) *Handler {
	return &Handler{developers: developers, cache: cache, audit: audit}
}

// List returns all developers sorted by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var developers []models.Developer
	if h.cache.Get(ctx, listCacheKey, &developers) {
		httpx.WriteJSON(w, http.StatusOK, developers)
		return
	}

	developers, err := h.developers.List(ctx, "name")
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if developers == nil {
		developers = []models.Developer{}
	}
	h.cache.Set(ctx, listCacheKey, developers)
	httpx.WriteJSON(w, http.StatusOK, developers)
}

// ListSorted returns all developers sorted by the path field. Unknown fields
// fall back to name.
func (h *Handler) ListSorted(w http.ResponseWriter, r *http.Request) {
	developers, err := h.developers.List(r.Context(), chi.URLParam(r, "field"))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	if developers == nil {
		developers = []models.Developer{}
	}
	httpx.WriteJSON(w, http.StatusOK, developers)
}

// Get returns a single developer by path id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	developer, err := h.developers.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The developer with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, developer)
}

// Create adds a developer.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in := middleware.Body[models.DeveloperInput](ctx)

	submitted, _ := in.SubmissionTime()
	if submitted.IsZero() {
		submitted = time.Now()
	}

	developer, err := h.developers.Insert(ctx, &models.Developer{
		Name:             in.Name,
		DateOfSubmission: submitted,
		Country:          in.Country,
	})
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, "create", developer.ID)
	h.cache.Invalidate(ctx, listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, developer)
}

// Update replaces a developer's fields by path id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	in := middleware.Body[models.DeveloperInput](ctx)

	developer, err := h.developers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The developer with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}

	developer.Name = in.Name
	developer.Country = in.Country
	if submitted, _ := in.SubmissionTime(); !submitted.IsZero() {
		developer.DateOfSubmission = submitted
	}

	developer, err = h.developers.Replace(ctx, id, developer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The developer with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(ctx, "update", id)
	h.cache.Invalidate(ctx, listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, developer)
}

// Delete removes a developer by path id. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	developer, err := h.developers.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "The developer with the given ID was not found.")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "database error")
		return
	}
	h.record(r.Context(), "delete", id)
	h.cache.Invalidate(r.Context(), listCacheKey)
	httpx.WriteJSON(w, http.StatusOK, developer)
}

func (h *Handler) record(ctx context.Context, action string, id primitive.ObjectID) {
	identity, _ := middleware.GetIdentity(ctx)
	if err := h.audit.Record(ctx, identity.SubjectID, action, "developers", id.Hex()); err != nil {
		log.Printf("audit record error: %v", err)
	}
}
