package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tablemaps/tablemaps-backend/api/responses"
	pkgAuth "github.com/tablemaps/tablemaps-backend/pkg/auth"
	"github.com/tablemaps/tablemaps-backend/pkg/config"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
)

const unauthorizedMessage = "Non autorisé à accéder à cette route"

// TokenCookieName is the HTTP-only cookie carrying the access token.
const TokenCookieName = "token"

// Protect validates the access token and seeds the request context with the
// caller's identity. The token is read from the Authorization header first,
// then from the token cookie.
func Protect(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, unauthorizedMessage))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, unauthorizedMessage))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		if token := strings.TrimSpace(raw[7:]); token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}
