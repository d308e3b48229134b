package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      enums.UserRole `json:"role"`
	Phone     *string        `json:"phone,omitempty"`
	Address   *string        `json:"address,omitempty"`
	Favorites []uuid.UUID    `json:"favorites,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CreateUserInput struct {
	Name     string  `json:"name" validate:"required,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     *string `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type UpdateUserInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *string `json:"role,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
}

func ToDTO(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		Favorites: append([]uuid.UUID(nil), u.Favorites...),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// fieldAccessors maps selectable columns onto model values for sparse
// projections. The password hash is deliberately absent.
var fieldAccessors = map[string]func(*models.User) any{
	"id":         func(u *models.User) any { return u.ID },
	"name":       func(u *models.User) any { return u.Name },
	"email":      func(u *models.User) any { return u.Email },
	"role":       func(u *models.User) any { return u.Role },
	"phone":      func(u *models.User) any { return u.Phone },
	"address":    func(u *models.User) any { return u.Address },
	"created_at": func(u *models.User) any { return u.CreatedAt },
	"updated_at": func(u *models.User) any { return u.UpdatedAt },
}

func project(u *models.User, columns []string) map[string]any {
	row := make(map[string]any, len(columns))
	for _, col := range columns {
		if accessor, ok := fieldAccessors[col]; ok {
			row[col] = accessor(u)
		}
	}
	return row
}
