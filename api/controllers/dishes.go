package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tablemaps/tablemaps-backend/api/responses"
	"github.com/tablemaps/tablemaps-backend/api/validators"
	dishsvc "github.com/tablemaps/tablemaps-backend/internal/dishes"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
)

// ListDishes serves the filtered, sorted, paginated dish collection.
func ListDishes(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Count, result.Pagination, result.Items)
	}
}

// GetDish serves a single dish with its weekly schedule.
func GetDish(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de plat invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dish)
	}
}

// CreateDish adds a dish to a restaurant the caller controls.
func CreateDish(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dishsvc.CreateDishInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Create(r.Context(), dishsvc.Actor{ID: userID, Role: role}, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dish)
	}
}

// UpdateDish applies a partial update after the ownership check.
func UpdateDish(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de plat invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dishsvc.UpdateDishInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dish, err := svc.Update(r.Context(), dishsvc.Actor{ID: userID, Role: role}, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dish)
	}
}

// DeleteDish removes a dish.
func DeleteDish(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de plat invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), dishsvc.Actor{ID: userID, Role: role}, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nil)
	}
}

// DishesByRestaurant serves the full menu of one restaurant.
func DishesByRestaurant(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantID, err := pathUUID(chi.URLParam(r, "restaurantId"), "Identifiant de restaurant invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ByRestaurant(r.Context(), restaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(items), nil, items)
	}
}

// AvailableDishes serves the dishes available today.
func AvailableDishes(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.AvailableToday(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(items), nil, items)
	}
}

// DishesByDayOfWeek serves dishes scheduled for a given weekday, 0 (Sunday)
// through 6 (Saturday).
func DishesByDayOfWeek(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.AvailableByWeekday(r.Context(), chi.URLParam(r, "dayOfWeek"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, len(items), nil, items)
	}
}

// GetDishSchedule serves a dish's weekly availability plan.
func GetDishSchedule(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de plat invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		schedule, err := svc.Schedule(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}

type scheduleDishRequest struct {
	Schedule []dishsvc.ScheduleEntryInput `json:"schedule"`
}

// ScheduleDish replaces a dish's weekly availability plan.
func ScheduleDish(svc dishsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(chi.URLParam(r, "id"), "Identifiant de plat invalide")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scheduleDishRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		schedule, err := svc.ReplaceSchedule(r.Context(), dishsvc.Actor{ID: userID, Role: role}, id, payload.Schedule)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schedule)
	}
}
