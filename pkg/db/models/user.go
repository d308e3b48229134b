package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/tablemaps/tablemaps-backend/pkg/db/types"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Email        string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.UserRole    `gorm:"column:role;type:text;not null;default:'user'"`
	Phone        *string           `gorm:"column:phone"`
	Address      *string           `gorm:"column:address"`
	Favorites    dbtypes.UUIDArray `gorm:"type:uuid[];column:favorites;not null;default:ARRAY[]::uuid[]"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
