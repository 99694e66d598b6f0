// Package memory is an in-memory implementation of the collection stores.
// It mirrors the Mongo backend's semantics so handler tests can run without
// a server.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/models"
	"github.com/rogalski/gamedex/internal/store"
)

// Store aggregates all in-memory collections.
type Store struct {
	Players    *Players
	Games      *Games
	Developers *Developers
	Users      *Users
}

func New() *Store {
	return &Store{
		Players:    &Players{docs: map[primitive.ObjectID]models.Player{}},
		Games:      &Games{docs: map[primitive.ObjectID]models.Game{}},
		Developers: &Developers{docs: map[primitive.ObjectID]models.Developer{}},
		Users:      &Users{docs: map[primitive.ObjectID]models.User{}},
	}
}

// Players is the in-memory players collection.
type Players struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Player
}

func (s *Players) Insert(_ context.Context, p *models.Player) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	s.docs[p.ID] = *p
	return p, nil
}

func (s *Players) FindByID(_ context.Context, id primitive.ObjectID) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Players) FindByEmail(_ context.Context, email string) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.docs {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Players) List(_ context.Context) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]models.Player, 0, len(s.docs))
	for _, p := range s.docs {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (s *Players) Replace(_ context.Context, id primitive.ObjectID, p *models.Player) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil, store.ErrNotFound
	}
	p.ID = id
	s.docs[id] = *p
	return p, nil
}

func (s *Players) Delete(_ context.Context, id primitive.ObjectID) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, id)
	return &p, nil
}

// Games is the in-memory games collection.
type Games struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Game
}

func (s *Games) Insert(_ context.Context, g *models.Game) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.ID = primitive.NewObjectID()
	s.docs[g.ID] = *g
	return g, nil
}

func (s *Games) FindByID(_ context.Context, id primitive.ObjectID) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &g, nil
}

func (s *Games) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

func (s *Games) List(_ context.Context) ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]models.Game, 0, len(s.docs))
	for _, g := range s.docs {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

func (s *Games) Replace(_ context.Context, id primitive.ObjectID, g *models.Game) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil, store.ErrNotFound
	}
	g.ID = id
	s.docs[id] = *g
	return g, nil
}

func (s *Games) Delete(_ context.Context, id primitive.ObjectID) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, id)
	return &g, nil
}

// Developers is the in-memory developers collection.
type Developers struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.Developer
}

func (s *Developers) Insert(_ context.Context, d *models.Developer) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = primitive.NewObjectID()
	s.docs[d.ID] = *d
	return d, nil
}

func (s *Developers) FindByID(_ context.Context, id primitive.ObjectID) (*models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (s *Developers) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

func (s *Developers) List(_ context.Context, sortField string) ([]models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	developers := make([]models.Developer, 0, len(s.docs))
	for _, d := range s.docs {
		developers = append(developers, d)
	}
	sort.Slice(developers, func(i, j int) bool {
		a, b := developers[i], developers[j]
		switch sortField {
		case "country":
			return a.Country < b.Country
		case "dateOfSubmission":
			return a.DateOfSubmission.Before(b.DateOfSubmission)
		default:
			return a.Name < b.Name
		}
	})
	return developers, nil
}

func (s *Developers) Replace(_ context.Context, id primitive.ObjectID, d *models.Developer) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil, store.ErrNotFound
	}
	d.ID = id
	s.docs[id] = *d
	return d, nil
}

func (s *Developers) Delete(_ context.Context, id primitive.ObjectID) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.docs, id)
	return &d, nil
}

// Users is the in-memory users collection.
type Users struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]models.User
}

func (s *Users) Insert(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = primitive.NewObjectID()
	s.docs[u.ID] = *u
	return u, nil
}

func (s *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.docs {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}
