package api

import (
	"context"
	"net/http"
	"regexp"

	"github.com/andrebq/talebox/account"
	"github.com/andrebq/talebox/internal/httputil"
	"github.com/andrebq/talebox/internal/logutil"
	"github.com/julienschmidt/httprouter"
)

type (
	// SecurityRealm guards sensitive routes: it resolves the caller's
	// identity from the bearer token before the handler runs.
	SecurityRealm struct {
		tokens *account.TokenIssuer
	}

	claimsKey byte
)

var (
	bearerTokenRE = regexp.MustCompile(`^Bearer ([^\s]+)$`)

	claimsCtxKey = claimsKey(1)
)

func NewRealm(tokens *account.TokenIssuer) *SecurityRealm {
	return &SecurityRealm{tokens: tokens}
}

// Protect wraps a route so it only runs with a valid bearer token, with the
// verified claims attached to the request context.
func (s *SecurityRealm) Protect(sensitive httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		hdrVal := r.Header.Get("Authorization")
		groups := bearerTokenRE.FindStringSubmatch(hdrVal)
		if len(groups) == 0 {
			httputil.WriteError(w, http.StatusUnauthorized, "missing_token", "request carries no bearer token")
			return
		}
		claims, err := s.tokens.Verify(groups[1])
		if err != nil {
			log := logutil.GetOrDefault(r.Context())
			log.Debug().Err(err).Msg("rejecting invalid token")
			httputil.WriteError(w, http.StatusUnauthorized, "invalid_token", "token is not valid")
			return
		}
		r = r.WithContext(WithClaims(r.Context(), claims))
		sensitive(w, r, params)
	}
}

func WithClaims(ctx context.Context, claims account.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromContext returns the claims attached by Protect, if any.
func ClaimsFromContext(ctx context.Context) (account.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(account.Claims)
	return claims, ok
}
