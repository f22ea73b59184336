package shop

import (
	"context"
	"net/http"
	"strings"

	"EduCom/internal/auth"
	"EduCom/pkg/kit"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// Session is the part of auth.Store the middleware consults.
type Session interface {
	CurrentUserID() string
}

// AuthJWT admits requests whose bearer token belongs to the user currently
// signed in. A token from before a logout or a different login is refused.
func AuthJWT(jwt *auth.TokenMaker, session Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := jwt.Parse(token)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}
			if claims.UserID != session.CurrentUserID() {
				kit.WriteError(w, r, http.StatusUnauthorized, "session ended", nil)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
