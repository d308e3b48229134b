package dishes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
)

type CreateDishInput struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Description    *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	RestaurantID   uuid.UUID       `json:"restaurant_id" validate:"required"`
	Image          *string         `json:"image,omitempty"`
	DietaryOptions []string        `json:"dietary_options,omitempty" validate:"omitempty,dive,max=50"`
	Ingredients    []string        `json:"ingredients,omitempty" validate:"omitempty,dive,max=100"`
	IsAvailable    *bool           `json:"is_available,omitempty"`
	AvailableDate  *time.Time      `json:"available_date,omitempty"`
}

type UpdateDishInput struct {
	Name           *string          `json:"name,omitempty" validate:"omitempty,max=100"`
	Description    *string          `json:"description,omitempty" validate:"omitempty,max=500"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Image          *string          `json:"image,omitempty"`
	DietaryOptions []string         `json:"dietary_options,omitempty" validate:"omitempty,dive,max=50"`
	Ingredients    []string         `json:"ingredients,omitempty" validate:"omitempty,dive,max=100"`
	IsAvailable    *bool            `json:"is_available,omitempty"`
	AvailableDate  *time.Time       `json:"available_date,omitempty"`
}

// ScheduleEntryInput is one day in a weekly availability plan. DayOfWeek is
// 0 for Sunday through 6 for Saturday. A missing IsAvailable means true.
type ScheduleEntryInput struct {
	DayOfWeek   *int  `json:"day_of_week"`
	IsAvailable *bool `json:"is_available,omitempty"`
}

type ScheduleEntryDTO struct {
	DayOfWeek   int  `json:"day_of_week"`
	IsAvailable bool `json:"is_available"`
}

type DishDTO struct {
	ID             uuid.UUID          `json:"id"`
	RestaurantID   uuid.UUID          `json:"restaurant_id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Price          decimal.Decimal    `json:"price"`
	Image          *string            `json:"image,omitempty"`
	DietaryOptions []string           `json:"dietary_options,omitempty"`
	Ingredients    []string           `json:"ingredients,omitempty"`
	IsAvailable    bool               `json:"is_available"`
	AvailableDate  time.Time          `json:"available_date"`
	WeeklySchedule []ScheduleEntryDTO `json:"weekly_schedule,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// DishScheduleDTO is the shape returned by the schedule read endpoint.
type DishScheduleDTO struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	WeeklySchedule []ScheduleEntryDTO `json:"weekly_schedule"`
}

func ToDTO(d *models.Dish) *DishDTO {
	dto := &DishDTO{
		ID:             d.ID,
		RestaurantID:   d.RestaurantID,
		Name:           d.Name,
		Description:    d.Description,
		Price:          d.Price,
		Image:          d.Image,
		DietaryOptions: d.DietaryOptions,
		Ingredients:    d.Ingredients,
		IsAvailable:    d.IsAvailable,
		AvailableDate:  d.AvailableDate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	for _, e := range d.WeeklySchedule {
		dto.WeeklySchedule = append(dto.WeeklySchedule, ScheduleEntryDTO{
			DayOfWeek:   e.DayOfWeek,
			IsAvailable: e.IsAvailable,
		})
	}
	return dto
}

func toScheduleDTO(d *models.Dish) *DishScheduleDTO {
	out := &DishScheduleDTO{
		ID:             d.ID,
		Name:           d.Name,
		WeeklySchedule: []ScheduleEntryDTO{},
	}
	for _, e := range d.WeeklySchedule {
		out.WeeklySchedule = append(out.WeeklySchedule, ScheduleEntryDTO{
			DayOfWeek:   e.DayOfWeek,
			IsAvailable: e.IsAvailable,
		})
	}
	return out
}

// fieldAccessors maps selectable columns onto model values so sparse
// projections can be assembled without a second query.
var fieldAccessors = map[string]func(*models.Dish) any{
	"id":              func(d *models.Dish) any { return d.ID },
	"restaurant_id":   func(d *models.Dish) any { return d.RestaurantID },
	"name":            func(d *models.Dish) any { return d.Name },
	"description":     func(d *models.Dish) any { return d.Description },
	"price":           func(d *models.Dish) any { return d.Price },
	"image":           func(d *models.Dish) any { return d.Image },
	"dietary_options": func(d *models.Dish) any { return d.DietaryOptions },
	"ingredients":     func(d *models.Dish) any { return d.Ingredients },
	"is_available":    func(d *models.Dish) any { return d.IsAvailable },
	"available_date":  func(d *models.Dish) any { return d.AvailableDate },
	"created_at":      func(d *models.Dish) any { return d.CreatedAt },
	"updated_at":      func(d *models.Dish) any { return d.UpdatedAt },
}

func project(d *models.Dish, columns []string) map[string]any {
	row := make(map[string]any, len(columns))
	for _, col := range columns {
		if accessor, ok := fieldAccessors[col]; ok {
			row[col] = accessor(d)
		}
	}
	return row
}
