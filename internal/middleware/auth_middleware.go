package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkwell-server/pkg/jwt"
	"inkwell-server/pkg/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware authenticates the bearer token and stores the owner id in
// the request context. Every ownership check downstream trusts this id.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "No token provided. Please log in.")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwt.ValidateToken(parts[1], jwtSecret)
			if err != nil || claims.TokenType == "refresh" {
				response.Unauthorized(w, "Invalid or expired token. Please log in again.")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
