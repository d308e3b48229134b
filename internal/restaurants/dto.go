package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

// LocationInput mirrors the public lat/lng order used on the wire.
type LocationInput struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// CreateRestaurantInput is the payload accepted when listing a restaurant.
type CreateRestaurantInput struct {
	Name         string             `json:"name" validate:"required,max=100"`
	Address      string             `json:"address" validate:"required"`
	Location     *LocationInput     `json:"location" validate:"required"`
	Phone        *string            `json:"phone,omitempty"`
	Email        *string            `json:"email,omitempty" validate:"omitempty,email"`
	Cuisine      []string           `json:"cuisine,omitempty"`
	OpeningHours types.OpeningHours `json:"opening_hours,omitempty"`
	Owner        *uuid.UUID         `json:"owner,omitempty"`
}

// UpdateRestaurantInput carries the mutable fields, all optional.
type UpdateRestaurantInput struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,max=100"`
	Address      *string            `json:"address,omitempty"`
	Location     *LocationInput     `json:"location,omitempty"`
	Phone        *string            `json:"phone,omitempty"`
	Email        *string            `json:"email,omitempty" validate:"omitempty,email"`
	Cuisine      []string           `json:"cuisine,omitempty"`
	OpeningHours types.OpeningHours `json:"opening_hours,omitempty"`
}

// RestaurantDTO is the public projection of a restaurant row.
type RestaurantDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Address      string               `json:"address"`
	Location     types.GeographyPoint `json:"location"`
	Phone        *string              `json:"phone,omitempty"`
	Email        *string              `json:"email,omitempty"`
	Cuisine      []string             `json:"cuisine"`
	OpeningHours types.OpeningHours   `json:"opening_hours,omitempty"`
	Owner        *uuid.UUID           `json:"owner,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToDTO maps the storage model onto the public shape.
func ToDTO(row *models.Restaurant) *RestaurantDTO {
	if row == nil {
		return nil
	}
	return &RestaurantDTO{
		ID:           row.ID,
		Name:         row.Name,
		Address:      row.Address,
		Location:     row.Location,
		Phone:        row.Phone,
		Email:        row.Email,
		Cuisine:      row.Cuisine,
		OpeningHours: row.OpeningHours,
		Owner:        row.OwnerID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// fieldAccessors expose row values by column name for select projections.
var fieldAccessors = map[string]func(*models.Restaurant) any{
	"id":            func(r *models.Restaurant) any { return r.ID },
	"name":          func(r *models.Restaurant) any { return r.Name },
	"address":       func(r *models.Restaurant) any { return r.Address },
	"phone":         func(r *models.Restaurant) any { return r.Phone },
	"email":         func(r *models.Restaurant) any { return r.Email },
	"cuisine":       func(r *models.Restaurant) any { return []string(r.Cuisine) },
	"owner":         func(r *models.Restaurant) any { return r.OwnerID },
	"opening_hours": func(r *models.Restaurant) any { return r.OpeningHours },
	"created_at":    func(r *models.Restaurant) any { return r.CreatedAt },
	"updated_at":    func(r *models.Restaurant) any { return r.UpdatedAt },
}

func project(row *models.Restaurant, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, column := range columns {
		if get, ok := fieldAccessors[column]; ok {
			out[column] = get(row)
		}
	}
	return out
}
