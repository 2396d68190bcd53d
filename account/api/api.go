package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/andrebq/talebox/account"
	"github.com/andrebq/talebox/internal/httputil"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/julienschmidt/httprouter"
)

type (
	credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

// RegisterRoutes mounts the register/login endpoints on the given router.
func RegisterRoutes(ctx context.Context, router *httprouter.Router, users *account.Store, tokens *account.TokenIssuer) {
	router.HandlerFunc("POST", "/api/auth/register", registerUser(ctx, users))
	router.HandlerFunc("POST", "/api/auth/login", login(ctx, users, tokens))
}

func registerUser(ctx context.Context, users *account.Store) http.HandlerFunc {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := httputil.DecodeJSON(r, &creds); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object with email and password")
			return
		}
		if creds.Email == "" || creds.Password == "" {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
			return
		}
		err := users.Register(r.Context(), creds.Email, creds.Password)
		var dup account.DuplicateEmail
		switch {
		case errors.As(err, &dup):
			httputil.WriteError(w, http.StatusBadRequest, "duplicate_email", dup.Error())
			return
		case err != nil:
			log.Error().Err(err).Msg("unable to register user")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to register user")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func login(ctx context.Context, users *account.Store, tokens *account.TokenIssuer) http.HandlerFunc {
	log := logutil.GetOrDefault(ctx)
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := httputil.DecodeJSON(r, &creds); err != nil {
			httputil.WriteError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object with email and password")
			return
		}
		user, err := users.Verify(r.Context(), creds.Email, creds.Password)
		var notFound account.UserNotFound
		var badPass account.InvalidPassword
		switch {
		case errors.As(err, &notFound):
			httputil.WriteError(w, http.StatusBadRequest, "user_not_found", notFound.Error())
			return
		case errors.As(err, &badPass):
			httputil.WriteError(w, http.StatusBadRequest, "invalid_password", badPass.Error())
			return
		case err != nil:
			log.Error().Err(err).Msg("unable to verify credentials")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to verify credentials")
			return
		}
		token, err := tokens.Issue(user)
		if err != nil {
			log.Error().Err(err).Msg("unable to issue token")
			httputil.WriteError(w, http.StatusInternalServerError, "internal", "unable to issue token")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
