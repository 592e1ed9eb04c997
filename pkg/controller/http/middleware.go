package http

import (
	"net/http"

	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger attaches a logger tagged with the request id
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// debugLogger attaches an empty debuglog.Log collecting soft failures of the request
func debugLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := debuglog.With(r.Context(), debuglog.New())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
