package middleware

import (
	"fmt"
	"net/http"

	"github.com/tablemaps/tablemaps-backend/api/responses"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
)

// Authorize allows the request through only when the caller's role is one of
// the listed roles. It must run after Protect.
func Authorize(logg *logger.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, unauthorizedMessage))
				return
			}
			if !allowed[role] {
				msg := fmt.Sprintf("Le rôle %s n'est pas autorisé à accéder à cette route", role)
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, msg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
