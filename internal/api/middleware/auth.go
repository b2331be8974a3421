package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"codetrail/internal/common"
	"codetrail/internal/common/security"
	"codetrail/internal/domain/model"
	"codetrail/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey contextKey = "userID"
	UserCtxKey   contextKey = "user"
)

// Authenticator guards JWT-protected routes (auth, teams).
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// KeyAuthenticator resolves the opaque per-user key carried as a query
// parameter on assignment routes. A missing or unknown key is unauthorized.
func KeyAuthenticator(userRepo repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("key")
			if key == "" {
				common.RespondWithError(w, http.StatusUnauthorized, "API key required")
				return
			}
			user, err := userRepo.FindByKey(r.Context(), key)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrUnauthorized) {
					common.RespondWithError(w, http.StatusUnauthorized, "Invalid API key")
				} else {
					common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
				}
				return
			}
			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*model.User)
	return user, ok
}
