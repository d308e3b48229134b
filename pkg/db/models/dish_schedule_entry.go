package models

import (
	"time"

	"github.com/google/uuid"
)

// DishScheduleEntry marks a weekday on which a dish is offered.
// DayOfWeek follows time.Weekday numbering, 0 = Sunday.
type DishScheduleEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DishID      uuid.UUID `gorm:"column:dish_id;type:uuid;not null;index"`
	DayOfWeek   int       `gorm:"column:day_of_week;not null"`
	IsAvailable bool      `gorm:"column:is_available;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
