package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Authorizer is the boolean gate for the admin surface.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (bool, error)
}

// RequireSession rejects requests without a valid, unexpired session
// cookie. It only gates access; handlers never see the session itself.
func RequireSession(auth Authorizer, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			ok, err := auth.Authorize(r.Context(), token)
			if err != nil {
				logger.Error("session check failed", zap.Error(err))
				writeAuthError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
				return
			}
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
