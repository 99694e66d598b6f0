package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/auth"
	"github.com/rogalski/gamedex/internal/developers"
	"github.com/rogalski/gamedex/internal/games"
	"github.com/rogalski/gamedex/internal/middleware"
	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/players"
	"github.com/rogalski/gamedex/internal/store/memory"
	"github.com/rogalski/gamedex/internal/users"
)

// env is a full router wired to in-memory collections.
type env struct {
	store  *memory.Store
	issuer *auth.Issuer
	router http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := memory.New()
	issuer := auth.NewIssuer("testsecret", 0)
	router := New(issuer, Handlers{
		Players:    players.NewHandler(mem.Players, mem.Games, mem.Developers, issuer, nil),
		Games:      games.NewHandler(mem.Games, mem.Developers, nil, nil),
		Developers: developers.NewHandler(mem.Developers, nil, nil),
		Users:      users.NewHandler(mem.Users, issuer, nil),
		Auth:       auth.NewHandler(mem.Players, issuer),
	})
	return &env{store: mem, issuer: issuer, router: router}
}

// do performs a request against the router. A string body is sent verbatim;
// anything else is marshaled to JSON.
func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func (e *env) seedDeveloper(t *testing.T, name string) *models.Developer {
	t.Helper()
	dev, err := e.store.Developers.Insert(context.Background(), &models.Developer{
		Name:             name,
		DateOfSubmission: time.Now(),
		Country:          "Poland",
	})
	require.NoError(t, err)
	return dev
}

func (e *env) seedGame(t *testing.T, name string, devID primitive.ObjectID) *models.Game {
	t.Helper()
	game, err := e.store.Games.Insert(context.Background(), &models.Game{
		Name:        name,
		Species:     "RPG",
		Premiere:    time.Now(),
		DeveloperID: devID,
	})
	require.NoError(t, err)
	return game
}

// seedPlayer inserts a player directly and returns it with a valid token.
// The stored password is a real hash of "123Aa".
func (e *env) seedPlayer(t *testing.T, email string, isAdmin bool) (*models.Player, string) {
	t.Helper()
	hash, err := auth.HashPassword("123Aa")
	require.NoError(t, err)
	player, err := e.store.Players.Insert(context.Background(), &models.Player{
		Name:     "seeded",
		Email:    email,
		Password: hash,
		Age:      30,
		Gender:   "F",
		GameIDs:  []primitive.ObjectID{},
		IsAdmin:  isAdmin,
	})
	require.NoError(t, err)
	token, err := e.issuer.Issue(player.ID.Hex(), isAdmin)
	require.NoError(t, err)
	return player, token
}
