package dishes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
	"github.com/tablemaps/tablemaps-backend/pkg/pagination"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

const invalidDayMessage = "Le jour de la semaine doit être un nombre entre 0 (dimanche) et 6 (samedi)"

type dishesRepository interface {
	Create(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, plan *listquery.Plan) ([]models.Dish, int64, error)
	FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error)
	AvailableBetween(ctx context.Context, from, to time.Time) ([]models.Dish, error)
	AvailableByWeekday(ctx context.Context, dayOfWeek int) ([]models.Dish, error)
	ReplaceSchedule(ctx context.Context, dishID uuid.UUID, entries []models.DishScheduleEntry) error
	RestaurantOwner(ctx context.Context, restaurantID uuid.UUID) (*uuid.UUID, error)
}

// Actor identifies the authenticated caller for access decisions.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// ListResult carries one page of dishes plus the envelope metadata.
type ListResult struct {
	Items      any
	Count      int
	Total      int64
	Pagination *types.Pagination
}

// Service exposes dish CRUD, availability lookups and weekly scheduling.
type Service interface {
	List(ctx context.Context, query url.Values) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*DishDTO, error)
	Create(ctx context.Context, actor Actor, input CreateDishInput) (*DishDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateDishInput) (*DishDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	ByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]DishDTO, error)
	AvailableToday(ctx context.Context) ([]DishDTO, error)
	AvailableByWeekday(ctx context.Context, dayOfWeek string) ([]DishDTO, error)
	Schedule(ctx context.Context, id uuid.UUID) (*DishScheduleDTO, error)
	ReplaceSchedule(ctx context.Context, actor Actor, id uuid.UUID, entries []ScheduleEntryInput) (*DishScheduleDTO, error)
}

type service struct {
	repo dishesRepository
	now  func() time.Time
}

// NewService builds the dish service backed by the provided repository.
func NewService(repo dishesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dishes repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, query url.Values) (*ListResult, error) {
	plan := listquery.Parse(query, ListSchema())

	rows, total, err := s.repo.List(ctx, plan)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes")
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

	items := make([]DishDTO, len(rows))
	for i := range rows {
		items[i] = *ToDTO(&rows[i])
	}
	result.Items = items
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DishDTO, error) {
	row, err := s.findDish(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(row), nil
}

// Create checks that the target restaurant exists before checking that the
// caller may add dishes to it, so a missing restaurant never reads as a
// permission problem.
func (s *service) Create(ctx context.Context, actor Actor, input CreateDishInput) (*DishDTO, error) {
	owner, err := s.repo.RestaurantOwner(ctx, input.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Restaurant non trouvé avec l'id %s", input.RestaurantID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup restaurant")
	}
	if !s.ownsRestaurant(actor, owner) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Vous n'avez pas l'autorisation d'ajouter un plat à ce restaurant")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Le prix doit être un nombre positif")
	}

	row := &models.Dish{
		RestaurantID:   input.RestaurantID,
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		Image:          input.Image,
		DietaryOptions: enums.FilterDietaryOptions(input.DietaryOptions),
		Ingredients:    input.Ingredients,
		IsAvailable:    true,
		AvailableDate:  s.now(),
	}
	if input.IsAvailable != nil {
		row.IsAvailable = *input.IsAvailable
	}
	if input.AvailableDate != nil {
		row.AvailableDate = *input.AvailableDate
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dish")
	}
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateDishInput) (*DishDTO, error) {
	row, err := s.findDish(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, row, "Vous n'avez pas l'autorisation de modifier ce plat"); err != nil {
		return nil, err
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Le prix doit être un nombre positif")
		}
		row.Price = *input.Price
	}
	if input.Image != nil {
		row.Image = input.Image
	}
	if input.DietaryOptions != nil {
		row.DietaryOptions = enums.FilterDietaryOptions(input.DietaryOptions)
	}
	if input.Ingredients != nil {
		row.Ingredients = input.Ingredients
	}
	if input.IsAvailable != nil {
		row.IsAvailable = *input.IsAvailable
	}
	if input.AvailableDate != nil {
		row.AvailableDate = *input.AvailableDate
	}

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update dish")
	}
	return ToDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	row, err := s.findDish(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actor, row, "Vous n'avez pas l'autorisation de supprimer ce plat"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete dish")
	}
	return nil
}

func (s *service) ByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]DishDTO, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Identifiant de restaurant invalide")
	}
	rows, err := s.repo.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes by restaurant")
	}
	return toDTOs(rows), nil
}

// AvailableToday returns dishes dated inside the current local day that are
// still flagged available.
func (s *service) AvailableToday(ctx context.Context) ([]DishDTO, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	rows, err := s.repo.AvailableBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available dishes")
	}
	return toDTOs(rows), nil
}

func (s *service) AvailableByWeekday(ctx context.Context, dayOfWeek string) ([]DishDTO, error) {
	day, err := strconv.Atoi(strings.TrimSpace(dayOfWeek))
	if err != nil || day < 0 || day > 6 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidDayMessage)
	}

	rows, err := s.repo.AvailableByWeekday(ctx, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dishes by weekday")
	}
	return toDTOs(rows), nil
}

func (s *service) Schedule(ctx context.Context, id uuid.UUID) (*DishScheduleDTO, error) {
	row, err := s.findDish(ctx, id)
	if err != nil {
		return nil, err
	}
	return toScheduleDTO(row), nil
}

// ReplaceSchedule swaps the dish's whole weekly plan. A single bad entry
// rejects the entire batch so the stored plan is never half applied.
func (s *service) ReplaceSchedule(ctx context.Context, actor Actor, id uuid.UUID, entries []ScheduleEntryInput) (*DishScheduleDTO, error) {
	row, err := s.findDish(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, row, "Vous n'avez pas l'autorisation de programmer ce plat"); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Données de programmation invalides")
	}

	plan := make([]models.DishScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.DayOfWeek == nil || *entry.DayOfWeek < 0 || *entry.DayOfWeek > 6 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, invalidDayMessage)
		}
		available := true
		if entry.IsAvailable != nil {
			available = *entry.IsAvailable
		}
		plan = append(plan, models.DishScheduleEntry{
			DayOfWeek:   *entry.DayOfWeek,
			IsAvailable: available,
		})
	}

	if err := s.repo.ReplaceSchedule(ctx, id, plan); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace dish schedule")
	}

	updated, err := s.findDish(ctx, id)
	if err != nil {
		return nil, err
	}
	return toScheduleDTO(updated), nil
}

func (s *service) findDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Identifiant de plat invalide")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Plat non trouvé avec l'id %s", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup dish")
	}
	return row, nil
}

// authorize runs after the not-found check so missing resources never leak
// through a 403. Ownership is transitive through the dish's restaurant.
func (s *service) authorize(ctx context.Context, actor Actor, row *models.Dish, message string) error {
	if actor.Role == enums.UserRoleAdmin {
		return nil
	}
	owner, err := s.repo.RestaurantOwner(ctx, row.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Restaurant non trouvé avec l'id %s", row.RestaurantID))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup restaurant owner")
	}
	if !s.ownsRestaurant(actor, owner) {
		return pkgerrors.New(pkgerrors.CodeForbidden, message)
	}
	return nil
}

func (s *service) ownsRestaurant(actor Actor, owner *uuid.UUID) bool {
	if actor.Role == enums.UserRoleAdmin {
		return true
	}
	return owner != nil && *owner == actor.ID
}

func toDTOs(rows []models.Dish) []DishDTO {
	items := make([]DishDTO, len(rows))
	for i := range rows {
		items[i] = *ToDTO(&rows[i])
	}
	return items
}
