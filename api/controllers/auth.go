package controllers

import (
	"net/http"
	"time"

	"github.com/tablemaps/tablemaps-backend/api/middleware"
	"github.com/tablemaps/tablemaps-backend/api/responses"
	"github.com/tablemaps/tablemaps-backend/api/validators"
	authsvc "github.com/tablemaps/tablemaps-backend/internal/auth"
	"github.com/tablemaps/tablemaps-backend/pkg/config"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

// Register handles public self registration and logs the new account in.
func Register(svc authsvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Register(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sendTokenResponse(w, cfg, http.StatusCreated, resp)
	}
}

// Login authenticates credentials and returns a fresh token.
func Login(svc authsvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sendTokenResponse(w, cfg, http.StatusOK, resp)
	}
}

// Logout clears the token cookie.
func Logout(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   cfg.App.IsProd(),
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteSuccess(w, nil)
	}
}

// Me returns the authenticated user's profile.
func Me(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// UpdateDetails changes the caller's profile fields.
func UpdateDetails(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload authsvc.UpdateDetailsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateDetails(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// UpdatePassword rotates the caller's password and reissues the token.
func UpdatePassword(svc authsvc.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload authsvc.UpdatePasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.UpdatePassword(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sendTokenResponse(w, cfg, http.StatusOK, resp)
	}
}

// sendTokenResponse sets the HTTP-only token cookie and mirrors the token in
// the response body for non-browser clients.
func sendTokenResponse(w http.ResponseWriter, cfg *config.Config, status int, resp *authsvc.AuthResponse) {
	if resp == nil {
		responses.WriteError(nil, nil, w, pkgerrors.New(pkgerrors.CodeInternal, "réponse vide"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Now().Add(cfg.JWT.CookieExpiry()),
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})

	responses.WriteEnvelope(w, status, types.SuccessEnvelope{
		Token: resp.Token,
		Data:  resp.User,
	})
}
