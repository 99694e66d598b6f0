package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/models"
)

func TestCreateDeveloper(t *testing.T) {
	e := newEnv(t)
	_, token := e.seedPlayer(t, "a@b.com", false)

	rec := e.do(t, http.MethodPost, "/api/developers", token, map[string]any{
		"name":             "CD Projekt",
		"dateOfSubmission": "2020-01-15",
		"country":          "Poland",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.Developer
	decode(t, rec, &body)
	assert.False(t, body.ID.IsZero())
	assert.Equal(t, "CD Projekt", body.Name)
	assert.Equal(t, "Poland", body.Country)
	assert.Equal(t, 2020, body.DateOfSubmission.Year())
}

func TestCreateDeveloperDefaultsSubmissionDate(t *testing.T) {
	e := newEnv(t)
	_, token := e.seedPlayer(t, "a@b.com", false)

	rec := e.do(t, http.MethodPost, "/api/developers", token, map[string]any{
		"name":    "CD Projekt",
		"country": "Poland",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.Developer
	decode(t, rec, &body)
	assert.WithinDuration(t, time.Now(), body.DateOfSubmission, time.Minute)
}

func TestCreateDeveloperValidation(t *testing.T) {
	e := newEnv(t)
	_, token := e.seedPlayer(t, "a@b.com", false)

	rec := e.do(t, http.MethodPost, "/api/developers", token, map[string]any{
		"name": "CD Projekt",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "country")

	rec = e.do(t, http.MethodPost, "/api/developers", "", map[string]any{
		"name":    "CD Projekt",
		"country": "Poland",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListDevelopersSortedByName(t *testing.T) {
	e := newEnv(t)
	e.seedDeveloper(t, "Techland")
	e.seedDeveloper(t, "Bloober Team")

	rec := e.do(t, http.MethodGet, "/api/developers", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.Developer
	decode(t, rec, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "Bloober Team", body[0].Name)
	assert.Equal(t, "Techland", body[1].Name)
}

func TestListDevelopersSortedByField(t *testing.T) {
	e := newEnv(t)
	_, err := e.store.Developers.Insert(context.Background(), &models.Developer{
		Name: "Techland", Country: "Austria", DateOfSubmission: time.Now(),
	})
	require.NoError(t, err)
	_, err = e.store.Developers.Insert(context.Background(), &models.Developer{
		Name: "Bloober Team", Country: "Zimbabwe", DateOfSubmission: time.Now(),
	})
	require.NoError(t, err)

	rec := e.do(t, http.MethodGet, "/api/developers/sort/country", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.Developer
	decode(t, rec, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "Austria", body[0].Country)
	assert.Equal(t, "Zimbabwe", body[1].Country)

	// Unknown sort fields fall back to name ordering.
	rec = e.do(t, http.MethodGet, "/api/developers/sort/bogus", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.Equal(t, "Bloober Team", body[0].Name)
}

func TestGetDeveloper(t *testing.T) {
	e := newEnv(t)
	dev := e.seedDeveloper(t, "CD Projekt")

	rec := e.do(t, http.MethodGet, "/api/developers/"+dev.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.Developer
	decode(t, rec, &body)
	assert.Equal(t, dev.ID, body.ID)

	rec = e.do(t, http.MethodGet, "/api/developers/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "The developer with the given ID was not found.")

	rec = e.do(t, http.MethodGet, "/api/developers/oops", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateDeveloper(t *testing.T) {
	e := newEnv(t)
	dev := e.seedDeveloper(t, "CD Projekt")
	_, token := e.seedPlayer(t, "a@b.com", false)

	rec := e.do(t, http.MethodPut, "/api/developers/"+dev.ID.Hex(), token, map[string]any{
		"name":    "CD Projekt Red",
		"country": "Poland",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := e.store.Developers.FindByID(context.Background(), dev.ID)
	require.NoError(t, err)
	assert.Equal(t, "CD Projekt Red", stored.Name)
	// Omitting the date keeps the stored one.
	assert.Equal(t, dev.DateOfSubmission.Unix(), stored.DateOfSubmission.Unix())
}

func TestDeleteDeveloperAdminOnly(t *testing.T) {
	e := newEnv(t)
	dev := e.seedDeveloper(t, "CD Projekt")
	_, playerToken := e.seedPlayer(t, "a@b.com", false)
	_, adminToken := e.seedPlayer(t, "admin@b.com", true)

	rec := e.do(t, http.MethodDelete, "/api/developers/"+dev.ID.Hex(), playerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied.")

	rec = e.do(t, http.MethodDelete, "/api/developers/"+dev.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var removed models.Developer
	decode(t, rec, &removed)
	assert.Equal(t, dev.ID, removed.ID)

	_, err := e.store.Developers.FindByID(context.Background(), dev.ID)
	assert.Error(t, err)
}
