package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an administrative account, distinct from Player. It carries no game
// references.
type User struct {
	ID       primitive.ObjectID `json:"_id,omitempty"     bson:"_id,omitempty"`
	Name     string             `json:"name"              bson:"name"`
	Email    string             `json:"email"             bson:"email"`
	Password string             `json:"-"                 bson:"password"` // never serialize
	IsAdmin  bool               `json:"isAdmin,omitempty" bson:"isAdmin,omitempty"`
}

// UserInput is the JSON body for POST /api/users.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the JSON body for POST /api/auth.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
