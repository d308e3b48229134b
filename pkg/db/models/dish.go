package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Dish represents a menu item attached to a restaurant.
type Dish struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID   uuid.UUID           `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name           string              `gorm:"column:name;not null"`
	Description    *string             `gorm:"column:description"`
	Price          decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Image          *string             `gorm:"column:image"`
	DietaryOptions pq.StringArray      `gorm:"column:dietary_options;type:text[];not null;default:ARRAY[]::text[]"`
	Ingredients    pq.StringArray      `gorm:"column:ingredients;type:text[];not null;default:ARRAY[]::text[]"`
	IsAvailable    bool                `gorm:"column:is_available;not null"`
	AvailableDate  time.Time           `gorm:"column:available_date;not null"`
	WeeklySchedule []DishScheduleEntry `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
