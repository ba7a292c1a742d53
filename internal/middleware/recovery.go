package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"pdfshelf/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. A panic after the
// response has started (e.g. midway through streaming a PDF) is only logged,
// since the status line is already on the wire.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}

			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.Error("panic recovered",
					"request_id", httputil.GetRequestID(r.Context()),
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"response_started", rec.status != 0,
					"stack", string(debug.Stack()),
				)

				if rec.status == 0 {
					httputil.RespondError(rec, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
