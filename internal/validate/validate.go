// Package validate checks inbound record shapes before they reach
// persistence. Rules run in order; the first failing rule wins and its
// message names the offending field.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/models"
)

// Error reports the first rule a record violated.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(`"%s" %s`, field, fmt.Sprintf(format, args...))}
}

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

func strLen(field, v string, min, max int) *Error {
	n := utf8.RuneCountInString(v)
	if n < min {
		return fail(field, "length must be at least %d characters long", min)
	}
	if n > max {
		return fail(field, "length must be less than or equal to %d characters long", max)
	}
	return nil
}

func email(field, v string) *Error {
	if err := strLen(field, v, 5, 255); err != nil {
		return err
	}
	if !emailRe.MatchString(v) {
		return fail(field, "must be a valid email")
	}
	return nil
}

// password enforces the registration complexity rule: 5-255 characters with
// at least one lowercase letter, one uppercase letter and one digit.
func password(field, v string) *Error {
	if err := strLen(field, v, 5, 255); err != nil {
		return err
	}
	if !lowerRe.MatchString(v) {
		return fail(field, "must contain at least 1 lowercase character")
	}
	if !upperRe.MatchString(v) {
		return fail(field, "must contain at least 1 uppercase character")
	}
	if !digitRe.MatchString(v) {
		return fail(field, "must contain at least 1 numeric character")
	}
	return nil
}

func objectID(field, v string) *Error {
	if _, err := primitive.ObjectIDFromHex(v); err != nil {
		return fail(field, "must be a valid id")
	}
	return nil
}

// Player validates a registration payload.
func Player(in *models.PlayerInput) error {
	if err := strLen("name", in.Name, 2, 20); err != nil {
		return err
	}
	if err := email("email", in.Email); err != nil {
		return err
	}
	if err := password("password", in.Password); err != nil {
		return err
	}
	if in.Age < 5 || in.Age > 110 {
		return fail("age", "must be between 5 and 110")
	}
	if err := strLen("gender", in.Gender, 1, 1); err != nil {
		return err
	}
	for _, id := range in.GameIDs {
		if err := objectID("games_id", id); err != nil {
			return err
		}
	}
	return nil
}

// PlayerUpdate validates a partial update; only present fields are checked.
func PlayerUpdate(in *models.PlayerUpdate) error {
	if in.Name != nil {
		if err := strLen("name", *in.Name, 2, 20); err != nil {
			return err
		}
	}
	if in.Email != nil {
		if err := email("email", *in.Email); err != nil {
			return err
		}
	}
	if in.Age != nil && (*in.Age < 5 || *in.Age > 110) {
		return fail("age", "must be between 5 and 110")
	}
	if in.Gender != nil {
		if err := strLen("gender", *in.Gender, 1, 1); err != nil {
			return err
		}
	}
	if in.GameIDs != nil {
		for _, id := range *in.GameIDs {
			if err := objectID("games_id", id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Game validates a game payload.
func Game(in *models.GameInput) error {
	if err := strLen("name", in.Name, 2, 255); err != nil {
		return err
	}
	if err := strLen("species", in.Species, 3, 255); err != nil {
		return err
	}
	if in.Premiere != "" {
		if _, err := in.PremiereTime(); err != nil {
			return fail("premiere", "must be a valid date")
		}
	}
	if err := objectID("developer_id", in.DeveloperID); err != nil {
		return err
	}
	return nil
}

// Developer validates a developer payload.
func Developer(in *models.DeveloperInput) error {
	if err := strLen("name", in.Name, 2, 255); err != nil {
		return err
	}
	if in.DateOfSubmission != "" {
		if _, err := in.SubmissionTime(); err != nil {
			return fail("dateOfSubmission", "must be a valid date")
		}
	}
	if in.Country == "" {
		return fail("country", "is required")
	}
	return nil
}

// User validates an administrative-account payload.
func User(in *models.UserInput) error {
	if err := strLen("name", in.Name, 5, 50); err != nil {
		return err
	}
	if err := email("email", in.Email); err != nil {
		return err
	}
	if err := password("password", in.Password); err != nil {
		return err
	}
	return nil
}

// Credentials validates a login payload. Only shape is checked here; the
// password complexity rule applies to registration, not login.
func Credentials(in *models.Credentials) error {
	if err := email("email", in.Email); err != nil {
		return err
	}
	if in.Password == "" {
		return fail("password", "is required")
	}
	return nil
}
