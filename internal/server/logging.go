package server

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/siteheader/internal/logging"
	"github.com/vango-dev/siteheader/pkg/location"
)

// requestLogger logs one structured line per request. Handlers reach a
// logger tagged with the request id through logging.From.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			reqID := chimw.GetReqID(r.Context())
			reqLogger := logger.With(slog.String("request_id", reqID))
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", reqID),
			)
		})
	}
}

// withLocation resolves the page the fragment is rendered for and stores it
// in the request context. Bad ?path= values are rejected with 400.
func withLocation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loc, err := location.FromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(location.NewContext(r.Context(), loc)))
	})
}

// requestLocation returns the location stored by withLocation.
func requestLocation(r *http.Request) location.Source {
	if loc, ok := location.FromContext(r.Context()); ok {
		return loc
	}
	return location.Static("/")
}
