package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"campuscare-admin/internal/auth"
	"campuscare-admin/internal/models"
)

type contextKey string

const adminKey contextKey = "admin"

// JWTAuth rejects requests without a valid admin token. The token is read from
// the Authorization header, or from the token query parameter for websocket
// upgrades where browsers cannot set headers.
func JWTAuth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				unauthorized(w, "missing token")
				return
			}

			admin, err := tokens.Parse(tokenString)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// GetAdmin returns the identity JWTAuth stored on the request context.
func GetAdmin(ctx context.Context) (models.AdminIdentity, bool) {
	admin, ok := ctx.Value(adminKey).(models.AdminIdentity)
	return admin, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
