package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Developer is a game studio stored in the developers collection.
type Developer struct {
	ID               primitive.ObjectID `json:"_id,omitempty"    bson:"_id,omitempty"`
	Name             string             `json:"name"             bson:"name"`
	DateOfSubmission time.Time          `json:"dateOfSubmission" bson:"dateOfSubmission"`
	Country          string             `json:"country"          bson:"country"`
}

// DeveloperInput is the JSON body for POST/PUT /api/developers.
type DeveloperInput struct {
	Name             string `json:"name"`
	DateOfSubmission string `json:"dateOfSubmission"`
	Country          string `json:"country"`
}

// SubmissionTime parses the optional dateOfSubmission field. An empty value
// returns the zero time; callers default it to the creation time.
func (in *DeveloperInput) SubmissionTime() (time.Time, error) {
	if in.DateOfSubmission == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, in.DateOfSubmission); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", in.DateOfSubmission)
}
