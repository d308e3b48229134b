package users

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/config"
	"github.com/tablemaps/tablemaps-backend/pkg/db"
	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
	"github.com/tablemaps/tablemaps-backend/pkg/pagination"
	"github.com/tablemaps/tablemaps-backend/pkg/security"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

const duplicateEmailMessage = "Un utilisateur avec cet email existe déjà"

type usersRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, plan *listquery.Plan) ([]models.User, int64, error)
}

// ListResult carries one page of users plus the envelope metadata.
type ListResult struct {
	Items      any
	Count      int
	Total      int64
	Pagination *types.Pagination
}

// Service exposes the admin-facing user management operations.
type Service interface {
	List(ctx context.Context, query url.Values) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     usersRepository
	password config.PasswordConfig
}

// NewService builds the user management service.
func NewService(repo usersRepository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) List(ctx context.Context, query url.Values) (*ListResult, error) {
	plan := listquery.Parse(query, ListSchema())

	rows, total, err := s.repo.List(ctx, plan)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	result := &ListResult{
		Count:      len(rows),
		Total:      total,
		Pagination: pagination.Build(plan.Page, total),
	}

	if len(plan.Select) > 0 {
		items := make([]map[string]any, len(rows))
		for i := range rows {
			items[i] = project(&rows[i], plan.Select)
		}
		result.Items = items
		return result, nil
	}

	items := make([]UserDTO, len(rows))
	for i := range rows {
		items[i] = *ToDTO(&rows[i])
	}
	result.Items = items
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	row, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(row), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	role, err := resolveRole(input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	row := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
		Address:      input.Address,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, duplicateEmailMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	row, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		row.Email = normalizeEmail(*input.Email)
	}
	if input.Role != nil {
		role, err := resolveRole(input.Role)
		if err != nil {
			return nil, err
		}
		row.Role = role
	}
	if input.Phone != nil {
		row.Phone = input.Phone
	}
	if input.Address != nil {
		row.Address = input.Address
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		row.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, duplicateEmailMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return ToDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Identifiant d'utilisateur invalide")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Utilisateur non trouvé")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return row, nil
}

func resolveRole(raw *string) (enums.UserRole, error) {
	if raw == nil || *raw == "" {
		return enums.UserRoleUser, nil
	}
	role, err := enums.ParseUserRole(*raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Rôle invalide")
	}
	return role, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
