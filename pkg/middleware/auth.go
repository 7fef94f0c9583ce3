package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"book-catalog/internal/usecase"
	"book-catalog/pkg/utils"

	"go.uber.org/zap"
)

// TokenAuthenticator resolves a bearer token to the username it was issued for.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's username in the context.
func Auth(auth TokenAuthenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			}

			username, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthorized) {
					logger.Warn("Rejected bearer token",
						zap.String("path", r.URL.Path),
						zap.String("request_id", utils.GetRequestIDFromContext(r.Context())),
						zap.Error(err))
					utils.ResponseUnauthorized(w, "Invalid token")
					return
				}

				logger.Error("Failed to authenticate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetUsernameContext(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
