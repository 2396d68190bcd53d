package account

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SecretEnvVar is the default environment variable holding the token
	// signing secret.
	SecretEnvVar = "TALEBOX_TOKEN_SECRET"

	// DefaultTokenTTL bounds how long an issued token stays valid. The token
	// itself carries the expiry, there is no server-side revocation.
	DefaultTokenTTL = 24 * time.Hour
)

type (
	// Claims is the identity assertion carried by a token.
	Claims struct {
		UserID string `json:"uid"`
		Email  string `json:"email"`
		jwt.RegisteredClaims
	}

	// TokenIssuer mints and verifies signed identity tokens using a
	// process-wide secret. Tokens outlive nothing: a restart rotates the
	// secret unless one is pinned via the environment.
	TokenIssuer struct {
		secret []byte
		ttl    time.Duration
	}
)

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// SecretFromEnv reads the signing secret from the given environment variable
// and removes it from the environment, so child processes and debug dumps
// cannot see it. An empty variable yields a fresh random secret, which means
// tokens do not survive a restart.
func SecretFromEnv(varname string) ([]byte, error) {
	if varname == "" {
		varname = SecretEnvVar
	}
	val := os.Getenv(varname)
	os.Setenv(varname, "")
	if val == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("account: unable to generate a random secret, cause %w", err)
		}
		return secret, nil
	}
	secret, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		return nil, fmt.Errorf("account: cannot decode %v as a base64 secret, cause %w", varname, err)
	}
	return secret, nil
}

func (t *TokenIssuer) Issue(user User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Verify(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, InvalidToken{Cause: err}
	}
	if !token.Valid {
		return Claims{}, InvalidToken{}
	}
	return claims, nil
}
