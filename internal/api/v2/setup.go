package api

import (
	"net/http"

	"github.com/Udyana30/rsup-ppk-sub000/internal/auth"
	"github.com/Udyana30/rsup-ppk-sub000/internal/server"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/database"
)

// New builds the API mux. All /api/v2 routes require a valid session token;
// /health does not.
func New(srv server.Server) *http.ServeMux {
	mux := http.NewServeMux()

	secret := []byte(srv.Config.Auth.JWTSecret)
	protected := func(h http.Handler) http.Handler {
		return auth.Middleware(secret, srv.Logger, h)
	}

	mux.Handle("/api/v2/documents", protected(DocumentsHandler(srv)))
	mux.Handle("/api/v2/documents/", protected(DocumentHandler(srv)))
	mux.Handle("/api/v2/versions/", protected(VersionsHandler(srv)))
	mux.Handle("/api/v2/staff-groups", protected(StaffGroupsHandler(srv)))
	mux.Handle("/api/v2/document-types", protected(DocumentTypesHandler(srv)))

	mux.Handle("/health", HealthHandler(srv))

	return mux
}

// HealthResponse reports service liveness and database pool statistics.
type HealthResponse struct {
	Status string              `json:"status"`
	DB     *database.PoolStats `json:"db,omitempty"`
}

// HealthHandler reports liveness.
func HealthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		resp := HealthResponse{Status: "ok"}
		if stats, err := database.GetPoolStats(srv.DB); err == nil {
			resp.DB = stats
		}

		if err := respondJSON(w, http.StatusOK, resp); err != nil {
			srv.Logger.Error("error encoding health response", "error", err)
		}
	})
}
