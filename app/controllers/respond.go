package controllers

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"griddle/app/middleware"
)

// envelope is the shared response shape: {status, message?, data?, results?}
// plus per-endpoint extras.
type envelope map[string]interface{}

func sendJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// viewerIdentity resolves the identifier used to deduplicate view counts:
// the authenticated user id when present, the caller's network address
// otherwise.
func viewerIdentity(r *http.Request) string {
	if user, ok := middleware.UserFrom(r); ok {
		return "user:" + strconv.Itoa(user.ID)
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
