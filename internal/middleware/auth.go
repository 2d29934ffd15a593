package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fjallet/uploadbox-go/internal/api_context"
	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
	guuid "github.com/google/uuid"
)

// WithAuth validates the session Bearer JWT and stashes the authenticated
// user ID in context.
func WithAuth(secret string) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			raw := strings.TrimPrefix(auth, "Bearer ")
			claims := &jwt.RegisteredClaims{}
			tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
				api.WriteError(w, http.StatusUnauthorized, "token expired", nil)
				return
			}

			parsedID, err := guuid.Parse(claims.Subject)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "invalid subject", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, db.UUID(parsedID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
