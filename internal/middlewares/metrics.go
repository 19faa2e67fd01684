package middlewares

import "net/http"

// StatusRecorder counts HTTP responses by status code.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
}

// MetricsMiddleware reports the status of every response to rec.
func MetricsMiddleware(rec StatusRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			rec.RecordHTTPStatus(rw.statusCode)
		})
	}
}
