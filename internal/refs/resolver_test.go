package refs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeChecker struct {
	known map[primitive.ObjectID]bool
	err   error
}

func (c *fakeChecker) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.known[id], nil
}

func checkerWith(ids ...primitive.ObjectID) *fakeChecker {
	known := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return &fakeChecker{known: known}
}

func TestResolveEmptyInput(t *testing.T) {
	res, err := Resolve(context.Background(), checkerWith(), nil)

	require.NoError(t, err)
	assert.Empty(t, res.Resolved)
	assert.Empty(t, res.Missing)
}

func TestResolveAllFound(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	res, err := Resolve(context.Background(), checkerWith(a, b), []primitive.ObjectID{a, b})

	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, res.Resolved)
	assert.Empty(t, res.Missing)
}

func TestResolveAccumulatesAllMisses(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	m1, m2 := primitive.NewObjectID(), primitive.NewObjectID()

	res, err := Resolve(context.Background(), checkerWith(a, b),
		[]primitive.ObjectID{m1, a, m2, b})

	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, res.Resolved)
	assert.Equal(t, []primitive.ObjectID{m1, m2}, res.Missing)
}

func TestResolvePreservesInputOrder(t *testing.T) {
	ids := make([]primitive.ObjectID, 50)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}

	res, err := Resolve(context.Background(), checkerWith(ids...), ids)

	require.NoError(t, err)
	assert.Equal(t, ids, res.Resolved)
}

func TestResolvePropagatesLookupErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Resolve(context.Background(), &fakeChecker{err: boom},
		[]primitive.ObjectID{primitive.NewObjectID()})

	assert.ErrorIs(t, err, boom)
}
