package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game is a single title stored in the games collection.
type Game struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name"          bson:"name"`
	Species     string             `json:"species"       bson:"species"`
	Premiere    time.Time          `json:"premiere"      bson:"premiere"`
	DeveloperID primitive.ObjectID `json:"developer_id"  bson:"developer_id"`
}

// GameInput is the JSON body for POST/PUT /api/games.
type GameInput struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	Premiere    string `json:"premiere"`
	DeveloperID string `json:"developer_id"`
}

// PremiereTime parses the optional premiere field. An empty value returns the
// zero time; callers default it to the creation time.
func (in *GameInput) PremiereTime() (time.Time, error) {
	if in.Premiere == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, in.Premiere); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", in.Premiere)
}

// GameView is a read projection with the developer reference expanded.
type GameView struct {
	Game
	Developer *Developer `json:"developer,omitempty"`
}
