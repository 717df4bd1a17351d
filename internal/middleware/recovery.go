package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jaekwang-park/todo-backend/internal/http/handler"
)

// Recovery turns a panic into the standard INTERNAL_ERROR response. The
// request id is echoed in the header and the message so a client report can
// be matched to the logged stack.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := newStatusRecorder(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				// net/http uses this to abort a response silently
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				requestID := GetRequestID(r.Context())
				logger.ErrorContext(r.Context(), "panic recovered",
					"error", v,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestID,
					"stack", string(debug.Stack()),
				)

				if rec.wroteHeader {
					return
				}
				message := "internal server error"
				if requestID != "" {
					rec.Header().Set(RequestIDHeader, requestID)
					message += " (request " + requestID + ")"
				}
				handler.WriteError(rec, http.StatusInternalServerError, "INTERNAL_ERROR", message)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
