package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Player is a catalog account stored in the players collection.
type Player struct {
	ID       primitive.ObjectID   `json:"_id,omitempty"     bson:"_id,omitempty"`
	Name     string               `json:"name"              bson:"name"`
	Email    string               `json:"email"             bson:"email"`
	Password string               `json:"-"                 bson:"password"` // never serialize
	Age      int                  `json:"age"               bson:"age"`
	Gender   string               `json:"gender"            bson:"gender"`
	GameIDs  []primitive.ObjectID `json:"games_id"          bson:"games_id"`
	IsAdmin  bool                 `json:"isAdmin,omitempty" bson:"isAdmin,omitempty"`
}

// PlayerInput is the JSON body for POST /api/players.
type PlayerInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Age      int      `json:"age"`
	Gender   string   `json:"gender"`
	GameIDs  []string `json:"games_id"`
}

// PlayerUpdate is the JSON body for PUT /api/players/{id} and
// PUT /api/players/myAccount. Nil fields are left unchanged.
type PlayerUpdate struct {
	Name    *string   `json:"name"`
	Email   *string   `json:"email"`
	Age     *int      `json:"age"`
	Gender  *string   `json:"gender"`
	GameIDs *[]string `json:"games_id"`
}

// PlayerView is a read projection with game references expanded.
type PlayerView struct {
	Player
	Games []GameView `json:"games"`
}
