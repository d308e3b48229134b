package controllers

import (
	"net/http"

	"github.com/tablemaps/tablemaps-backend/api/responses"
	"github.com/tablemaps/tablemaps-backend/internal/cron"
	"github.com/tablemaps/tablemaps-backend/pkg/logger"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

// ResetDishes triggers the daily dish reset on demand, admin only.
func ResetDishes(job *cron.DishResetJob, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := job.Execute(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteEnvelope(w, http.StatusOK, types.SuccessEnvelope{
			Message:       result.Message,
			ModifiedCount: &result.ModifiedCount,
		})
	}
}
