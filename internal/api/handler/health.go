package handler

import (
	"net/http"

	"github.com/nexodus/nexodus-api/internal/api/response"
	"github.com/nexodus/nexodus-api/internal/repository/mongodb"
)

// Heartbeat is the liveness probe. It is the only route exempt from the
// proxy gate and answers with plain text.
func Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Heartbeat, my heartbeat."))
}

// ReadyCheck reports readiness including store connectivity.
func ReadyCheck(db *mongodb.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}

		response.OK(w, map[string]string{"status": "ready"})
	}
}
