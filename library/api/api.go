package api

import (
	"context"
	"net/http"

	accountapi "github.com/andrebq/talebox/account/api"
	audioapi "github.com/andrebq/talebox/audiostore/api"
	catalogapi "github.com/andrebq/talebox/catalog/api"
	"github.com/andrebq/talebox/library"
	progressapi "github.com/andrebq/talebox/progress/api"
	"github.com/julienschmidt/httprouter"
)

// AsHandler mounts every endpoint of the library on a single router.
// Catalog and asset routes are open, progress routes sit behind the
// security realm.
func AsHandler(ctx context.Context, lib *library.L) http.Handler {
	router := httprouter.New()
	realm := accountapi.NewRealm(lib.Tokens())
	accountapi.RegisterRoutes(ctx, router, lib.Users(), lib.Tokens())
	catalogapi.RegisterRoutes(ctx, router, lib.Books(), lib.Audio())
	audioapi.RegisterRoutes(ctx, router, lib.Audio())
	progressapi.RegisterRoutes(ctx, router, realm, lib.Progress())
	return allowAllCORS(router)
}

// allowAllCORS mirrors the permissive policy a local playback client needs:
// any origin may call any endpoint, credentials travel in headers.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
