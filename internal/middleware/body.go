package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// ValidateBody decodes the request body into T and runs the schema check for
// that kind. On failure it responds 400 with the first validation message;
// on success the decoded body is available to the handler via Body.
func ValidateBody[T any](validate func(*T) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var in T
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if err := validate(&in); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), bodyContextKey, &in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Body retrieves the validated body stored by ValidateBody. It is nil on
// routes without a ValidateBody check.
func Body[T any](ctx context.Context) *T {
	in, _ := ctx.Value(bodyContextKey).(*T)
	return in
}
