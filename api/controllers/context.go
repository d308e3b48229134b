package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tablemaps/tablemaps-backend/api/middleware"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
)

// callerFromContext recovers the authenticated caller seeded by Protect.
func callerFromContext(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Non autorisé à accéder à cette route")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Non autorisé à accéder à cette route")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Non autorisé à accéder à cette route")
	}
	return id, role, nil
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(raw, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, message)
	}
	return id, nil
}
