package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/voting"
)

// tokenTTL is how long an issued bearer token stays valid.
const tokenTTL = 24 * time.Hour

// Claims is the JWT payload: the wallet address and its resolved role.
type Claims struct {
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role"`
	jwt.RegisteredClaims
}

type principalKey struct{}

// login issues a bearer token for a registered wallet.
// POST /auth/login
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	req := &LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	user, err := a.voting.User(r.Context(), req.WalletAddress)
	if err != nil {
		ErrUnauthorized.With("wallet not registered").Write(w)
		return
	}
	expireAt := time.Now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		WalletAddress: user.WalletAddress,
		Role:          user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	log.Debugw("issued auth token", "wallet", user.WalletAddress, "role", user.Role)
	httpWriteJSON(w, &LoginResponse{
		Token:    signed,
		Role:     user.Role,
		ExpireAt: expireAt,
	})
}

// authMiddleware resolves the bearer token into a Principal and stores it
// in the request context. Requests without a valid token are rejected
// before reaching the handler.
func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ErrUnauthorized.With("missing bearer token").Write(w)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims,
			func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return a.jwtSecret, nil
			},
		)
		if err != nil || !token.Valid {
			ErrInvalidToken.Write(w)
			return
		}
		p := voting.Principal{
			WalletAddress: claims.WalletAddress,
			Role:          claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), principalKey{}, p),
		))
	})
}

// principal returns the Principal resolved by authMiddleware. Handlers on
// unauthenticated routes get a zero Principal, which no role check accepts.
func principal(r *http.Request) voting.Principal {
	p, _ := r.Context().Value(principalKey{}).(voting.Principal)
	return p
}
