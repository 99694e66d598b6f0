package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rogalski/gamedex/internal/models"
)

func validPlayerInput() models.PlayerInput {
	return models.PlayerInput{
		Name:     "p1",
		Email:    "a@b.com",
		Password: "123Aa",
		Age:      20,
		Gender:   "M",
		GameIDs:  []string{},
	}
}

func TestPlayerValid(t *testing.T) {
	in := validPlayerInput()
	assert.NoError(t, Player(&in))
}

func TestPlayerValidWithGameIDs(t *testing.T) {
	in := validPlayerInput()
	in.GameIDs = []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}
	assert.NoError(t, Player(&in))
}

func TestPlayerRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PlayerInput)
		field  string
	}{
		{"name too short", func(in *models.PlayerInput) { in.Name = "p" }, "name"},
		{"name too long", func(in *models.PlayerInput) { in.Name = strings.Repeat("p", 21) }, "name"},
		{"email too short", func(in *models.PlayerInput) { in.Email = "a@b" }, "email"},
		{"email not an address", func(in *models.PlayerInput) { in.Email = "not-an-email" }, "email"},
		{"password too short", func(in *models.PlayerInput) { in.Password = "1Aa" }, "password"},
		{"password no lowercase", func(in *models.PlayerInput) { in.Password = "123AB" }, "password"},
		{"password no uppercase", func(in *models.PlayerInput) { in.Password = "123ab" }, "password"},
		{"password no digit", func(in *models.PlayerInput) { in.Password = "abcAB" }, "password"},
		{"age below minimum", func(in *models.PlayerInput) { in.Age = 4 }, "age"},
		{"age above maximum", func(in *models.PlayerInput) { in.Age = 111 }, "age"},
		{"gender empty", func(in *models.PlayerInput) { in.Gender = "" }, "gender"},
		{"gender too long", func(in *models.PlayerInput) { in.Gender = "MM" }, "gender"},
		{"malformed game id", func(in *models.PlayerInput) { in.GameIDs = []string{"nope"} }, "games_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPlayerInput()
			tt.mutate(&in)

			err := Player(&in)

			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Message, tt.field)
		})
	}
}

func TestPlayerFirstFailureWins(t *testing.T) {
	in := validPlayerInput()
	in.Name = "p"
	in.Email = "bad"

	var verr *Error
	require.ErrorAs(t, Player(&in), &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestPlayerUpdateOnlyChecksPresentFields(t *testing.T) {
	assert.NoError(t, PlayerUpdate(&models.PlayerUpdate{}))

	bad := "x"
	var verr *Error
	require.ErrorAs(t, PlayerUpdate(&models.PlayerUpdate{Name: &bad}), &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestGameRules(t *testing.T) {
	valid := models.GameInput{
		Name:        "Gothic",
		Species:     "RPG",
		Premiere:    "2001-10-20",
		DeveloperID: primitive.NewObjectID().Hex(),
	}
	assert.NoError(t, Game(&valid))

	tests := []struct {
		name   string
		mutate func(*models.GameInput)
		field  string
	}{
		{"name too short", func(in *models.GameInput) { in.Name = "g" }, "name"},
		{"species too short", func(in *models.GameInput) { in.Species = "ab" }, "species"},
		{"premiere not a date", func(in *models.GameInput) { in.Premiere = "soon" }, "premiere"},
		{"developer id missing", func(in *models.GameInput) { in.DeveloperID = "" }, "developer_id"},
		{"developer id malformed", func(in *models.GameInput) { in.DeveloperID = "123" }, "developer_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			var verr *Error
			require.ErrorAs(t, Game(&in), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestGamePremiereOptional(t *testing.T) {
	in := models.GameInput{Name: "Gothic", Species: "RPG", DeveloperID: primitive.NewObjectID().Hex()}
	assert.NoError(t, Game(&in))
}

func TestDeveloperRules(t *testing.T) {
	valid := models.DeveloperInput{Name: "CD Projekt", DateOfSubmission: "2006-03-11", Country: "Poland"}
	assert.NoError(t, Developer(&valid))

	in := valid
	in.Name = "x"
	var verr *Error
	require.ErrorAs(t, Developer(&in), &verr)
	assert.Equal(t, "name", verr.Field)

	in = valid
	in.Country = ""
	require.ErrorAs(t, Developer(&in), &verr)
	assert.Equal(t, "country", verr.Field)

	in = valid
	in.DateOfSubmission = "yesterday"
	require.ErrorAs(t, Developer(&in), &verr)
	assert.Equal(t, "dateOfSubmission", verr.Field)
}

func TestUserRules(t *testing.T) {
	valid := models.UserInput{Name: "admin1", Email: "admin@b.com", Password: "123Aa"}
	assert.NoError(t, User(&valid))

	in := valid
	in.Name = "usr" // below the 5 character minimum for users
	var verr *Error
	require.ErrorAs(t, User(&in), &verr)
	assert.Equal(t, "name", verr.Field)

	in = valid
	in.Password = "12345"
	require.ErrorAs(t, User(&in), &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestCredentialsRules(t *testing.T) {
	assert.NoError(t, Credentials(&models.Credentials{Email: "a@b.com", Password: "whatever"}))

	var verr *Error
	require.ErrorAs(t, Credentials(&models.Credentials{Email: "bad", Password: "x"}), &verr)
	assert.Equal(t, "email", verr.Field)

	// Login does not enforce the registration complexity rule, only presence.
	require.ErrorAs(t, Credentials(&models.Credentials{Email: "a@b.com"}), &verr)
	assert.Equal(t, "password", verr.Field)
}
