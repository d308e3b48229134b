package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

// Restaurant represents a listed establishment and its geolocation.
type Restaurant struct {
	ID           uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string               `gorm:"column:name;not null"`
	Address      string               `gorm:"column:address;not null"`
	Location     types.GeographyPoint `gorm:"column:location;type:geography(Point,4326);not null"`
	Phone        *string              `gorm:"column:phone"`
	Email        *string              `gorm:"column:email"`
	Cuisine      pq.StringArray       `gorm:"column:cuisine;type:text[];not null;default:ARRAY[]::text[]"`
	OpeningHours types.OpeningHours   `gorm:"column:opening_hours;type:jsonb"`
	OwnerID      *uuid.UUID           `gorm:"column:owner;type:uuid"`
	Dishes       []Dish               `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
