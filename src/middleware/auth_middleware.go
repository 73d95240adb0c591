package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	store "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
)

// ParseTokenFromRequest extracts and validates JWT token from request, returning claims if valid
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// JWTAuthMiddleware validates the bearer token and loads the authenticated
// user into the request context. The user record comes from the cache when
// fresh, the database otherwise.
func JWTAuthMiddleware(pool *pgxpool.Pool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			user, found := store.GetUserCache(userID)
			if !found {
				user, err = db.GetUserByID(r.Context(), pool, userID)
				if err != nil {
					log.Printf("ERROR: Token user %s not found: %v", userID, err)
					http.Error(w, "user not found", http.StatusUnauthorized)
					return
				}
				store.SetUserCache(user)
			}

			ctx := context.WithValue(r.Context(), "user_id", user.ID)
			ctx = context.WithValue(ctx, "user", user)

			r = r.WithContext(ctx)
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the authenticated user placed in the context by
// JWTAuthMiddleware.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value("user").(*models.User)
	return user
}

// ProMiddleware gates pro-tier features (AI insights, reports).
func ProMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil || !user.IsPro {
			http.Error(w, "Pro subscription required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
