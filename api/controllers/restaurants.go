package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablemaps/tablemaps-backend/api/responses"
	"github.com/tablemaps/tablemaps-backend/api/validators"
	restaurantsvc "github.com/tablemaps/tablemaps-backend/internal/restaurants"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
)

// ListRestaurants serves the filtered, sorted, paginated collection.
func ListRestaurants(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Count, result.Pagination, result.Items)
	}
}

// GetRestaurant serves a single restaurant by id.
func GetRestaurant(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de restaurant invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

// CreateRestaurant handles restaurant creation for owners and admins.
func CreateRestaurant(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload restaurantsvc.CreateRestaurantInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.Create(r.Context(), restaurantsvc.Actor{ID: userID, Role: role}, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, restaurant)
	}
}

// UpdateRestaurant applies a partial update after the ownership check.
func UpdateRestaurant(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de restaurant invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload restaurantsvc.UpdateRestaurantInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		restaurant, err := svc.Update(r.Context(), restaurantsvc.Actor{ID: userID, Role: role}, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, restaurant)
	}
}

// DeleteRestaurant removes a restaurant and its dishes.
func DeleteRestaurant(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de restaurant invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), restaurantsvc.Actor{ID: userID, Role: role}, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}

// NearbyRestaurants serves the proximity search. The path carries the center
// as "lat,lng" and the radius in kilometres.
func NearbyRestaurants(svc restaurantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coords := chi.URLParam(r, "coordinates")
		distance := chi.URLParam(r, "distance")

		items, err := svc.Nearby(r.Context(), coords, distance)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(items), nil, items)
	}
}
