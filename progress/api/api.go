package api

import (
	"context"
	"net/http"

	accountapi "github.com/andrebq/talebox/account/api"
	"github.com/andrebq/talebox/internal/httputil"
	"github.com/andrebq/talebox/progress"
	"github.com/julienschmidt/httprouter"
)

type (
	saveProgressRequest struct {
		AudioName   string  `json:"audioName"`
		CurrentTime float64 `json:"currentTime"`
	}
)

// RegisterRoutes mounts the progress endpoints wrapped by the security realm:
// the user id always comes from the verified token, never from the caller.
func RegisterRoutes(ctx context.Context, router *httprouter.Router, realm *accountapi.SecurityRealm, tracker *progress.Tracker) {
	router.Handle("POST", "/api/books/:id/progress", realm.Protect(saveProgress(ctx, tracker)))
	router.Handle("GET", "/api/books/:id/progress", realm.Protect(getProgress(ctx, tracker)))
}

func saveProgress(ctx context.Context, tracker *progress.Tracker) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		claims, ok := accountapi.ClaimsFromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "missing_token", "request carries no identity")
			return
		}
		var req saveProgressRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object with audioName and currentTime")
			return
		}
		if req.AudioName == "" {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "audioName is required")
			return
		}
		tracker.Save(claims.UserID, params.ByName("id"), req.AudioName, req.CurrentTime)
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func getProgress(ctx context.Context, tracker *progress.Tracker) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		claims, ok := accountapi.ClaimsFromContext(r.Context())
		if !ok {
			httputil.WriteError(w, http.StatusUnauthorized, "missing_token", "request carries no identity")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, tracker.Get(claims.UserID, params.ByName("id")))
	}
}
