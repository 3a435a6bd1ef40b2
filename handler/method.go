package handler

import (
	"net/http"
	"slices"
	"strings"
)

// AllowMethods rejects requests whose method is not listed with a 405
// Failure response carrying message. It runs before any body is read.
func AllowMethods(message string, methods ...string) func(http.Handler) http.Handler {
	allow := strings.Join(methods, ", ")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(methods, r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			resp := Failure(http.StatusMethodNotAllowed, message, WithJSONHeader("Allow", allow))
			_ = resp.Render(w, r)
		})
	}
}
