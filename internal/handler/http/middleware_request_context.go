package http

import (
	"net/http"

	"github.com/MKhiriev/t4-api/internal/utils"
)

// withRequestContext stores the request in its own context. Code that only
// receives a context, such as the password reset email override, reads the
// caller's headers from it.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(utils.WithRequest(r.Context(), r)))
	})
}
