package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/content-analyzer/internal/logging"
	"github.com/bryanwahyu/content-analyzer/internal/respond"
)

// MsgUnexpected is the only detail a client sees for an unhandled failure.
const MsgUnexpected = "An unexpected error occurred"

// Recover turns a panic into a 500 JSON response. The panic value and stack
// are logged, never returned.
func Recover(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.WithRequestID(r.Context(), logger).WithFields(logrus.Fields{
					"panic": fmt.Sprint(rec),
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("unhandled panic in request")
				if !wrapped.wroteHeader {
					_ = respond.Error(wrapped, http.StatusInternalServerError, MsgUnexpected)
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}
