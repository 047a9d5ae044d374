package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/safedep/dry/log"
)

type actorHandler func(w http.ResponseWriter, r *http.Request, actorID string)

// withIdentity rejects requests without an identity header.
func (s *Server) withIdentity(next actorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := strings.TrimSpace(r.Header.Get(IdentityHeader))
		if actorID == "" {
			writeMessage(w, http.StatusUnauthorized, "missing "+IdentityHeader+" header")
			return
		}
		next(w, r, actorID)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
