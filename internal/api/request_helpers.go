package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// middlewareReqID returns the chi request ID for the request, or an empty
// string when the middleware is not installed (e.g. bare handler tests).
func middlewareReqID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
