// Package refs resolves foreign-key ids against their owning collection.
package refs

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checker reports whether a referenced document exists. Implemented by the
// collection stores.
type Checker interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// Resolution partitions a sequence of ids into those that reference an
// existing document and those that do not. Input order is preserved in both
// partitions.
type Resolution struct {
	Resolved []primitive.ObjectID
	Missing  []primitive.ObjectID
}

// Resolve looks up every id independently and concurrently. It does not
// short-circuit on the first miss: all misses are accumulated so the caller
// can report them together. The WaitGroup barrier guarantees no result is
// returned until every id has been resolved.
func Resolve(ctx context.Context, c Checker, ids []primitive.ObjectID) (Resolution, error) {
	if len(ids) == 0 {
		return Resolution{}, nil
	}

	found := make([]bool, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id primitive.ObjectID) {
			defer wg.Done()
			found[i], errs[i] = c.Exists(ctx, id)
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Resolution{}, err
		}
	}

	var res Resolution
	for i, id := range ids {
		if found[i] {
			res.Resolved = append(res.Resolved, id)
		} else {
			res.Missing = append(res.Missing, id)
		}
	}
	return res, nil
}
