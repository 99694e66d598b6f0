package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidateObjectID rejects requests whose {id} path parameter is not a valid
// store id. A syntactically invalid id is treated the same as an absent
// document: 404, not 400.
func ValidateObjectID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id")); err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}
