package restaurants

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/enums"
	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/geo"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
	"github.com/tablemaps/tablemaps-backend/pkg/pagination"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

type restaurantsRepository interface {
	Create(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Update(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, plan *listquery.Plan) ([]models.Restaurant, int64, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.Restaurant, error)
}

// Actor identifies the authenticated caller for access decisions.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// ListResult carries one page of restaurants plus the envelope metadata.
type ListResult struct {
	Items      any
	Count      int
	Total      int64
	Pagination *types.Pagination
}

// Service exposes restaurant CRUD and proximity search semantics.
type Service interface {
	List(ctx context.Context, query url.Values) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error)
	Create(ctx context.Context, actor Actor, input CreateRestaurantInput) (*RestaurantDTO, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRestaurantInput) (*RestaurantDTO, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Nearby(ctx context.Context, coords, distance string) ([]RestaurantDTO, error)
}

type service struct {
	repo restaurantsRepository
}

// NewService builds the restaurant service backed by the provided repository.
func NewService(repo restaurantsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restaurants repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, query url.Values) (*ListResult, error) {
	plan := listquery.Parse(query, ListSchema())

	geo, err := geoCondition(query)
	if err != nil {
		return nil, err
	}
	if geo != nil {
		plan.Conditions = append(plan.Conditions, *geo)
	}

	rows, total, err := s.repo.List(ctx, plan)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
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

	items := make([]RestaurantDTO, len(rows))
	for i := range rows {
		items[i] = *ToDTO(&rows[i])
	}
	result.Items = items
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*RestaurantDTO, error) {
	row, err := s.findRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(row), nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateRestaurantInput) (*RestaurantDTO, error) {
	if !actor.Role.CanManageRestaurants() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Seuls les propriétaires et administrateurs peuvent créer un restaurant")
	}
	if input.Location == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "La localisation du restaurant est requise")
	}
	if err := input.OpeningHours.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Les heures d'ouverture sont invalides")
	}

	ownerID := actor.ID
	if input.Owner != nil && actor.Role == enums.UserRoleAdmin {
		ownerID = *input.Owner
	}

	row := &models.Restaurant{
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		Location:     types.GeographyPoint{Lat: input.Location.Lat, Lng: input.Location.Lng},
		Phone:        input.Phone,
		Email:        input.Email,
		Cuisine:      input.Cuisine,
		OpeningHours: input.OpeningHours,
		OwnerID:      &ownerID,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create restaurant")
	}
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, input UpdateRestaurantInput) (*RestaurantDTO, error) {
	row, err := s.findRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, row); err != nil {
		return nil, err
	}
	if err := input.OpeningHours.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Les heures d'ouverture sont invalides")
	}

	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		row.Address = strings.TrimSpace(*input.Address)
	}
	if input.Location != nil {
		row.Location = types.GeographyPoint{Lat: input.Location.Lat, Lng: input.Location.Lng}
	}
	if input.Phone != nil {
		row.Phone = input.Phone
	}
	if input.Email != nil {
		row.Email = input.Email
	}
	if input.Cuisine != nil {
		row.Cuisine = input.Cuisine
	}
	if input.OpeningHours != nil {
		row.OpeningHours = input.OpeningHours
	}

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	return ToDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	row, err := s.findRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, row); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete restaurant")
	}
	return nil
}

// Nearby parses the public "lat,lng" path segment and a distance in
// kilometres, then searches around that point. The lat/lng order is swapped
// to the lng/lat storage order exactly once, here.
func (s *service) Nearby(ctx context.Context, coords, distance string) ([]RestaurantDTO, error) {
	lat, lng, err := parseCoords(coords)
	if err != nil {
		return nil, err
	}

	radiusKm, err := strconv.ParseFloat(strings.TrimSpace(distance), 64)
	if err != nil || radiusKm < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Veuillez fournir une distance valide en kilomètres")
	}

	rows, err := s.repo.Nearby(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "nearby restaurants")
	}

	items := make([]RestaurantDTO, len(rows))
	for i := range rows {
		items[i] = *ToDTO(&rows[i])
	}
	return items, nil
}

func (s *service) findRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Identifiant de restaurant invalide")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Restaurant non trouvé avec l'id %s", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup restaurant")
	}
	return row, nil
}

// authorize runs after the not-found check so missing resources never leak
// through a 403.
func (s *service) authorize(actor Actor, row *models.Restaurant) error {
	if actor.Role == enums.UserRoleAdmin {
		return nil
	}
	if row.OwnerID != nil && *row.OwnerID == actor.ID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeForbidden, "Vous n'êtes pas autorisé à modifier ce restaurant")
}

// geoCondition builds the proximity WHERE fragment from the lat, lng and
// maxDistance query parameters. When any of the three is absent the listing
// proceeds without a geo filter.
func geoCondition(query url.Values) (*listquery.Condition, error) {
	rawLat := strings.TrimSpace(query.Get("lat"))
	rawLng := strings.TrimSpace(query.Get("lng"))
	rawDistance := strings.TrimSpace(query.Get("maxDistance"))
	if rawLat == "" || rawLng == "" || rawDistance == "" {
		return nil, nil
	}

	lat, lng, err := parseCoords(rawLat + "," + rawLng)
	if err != nil {
		return nil, err
	}
	radiusKm, err := strconv.ParseFloat(rawDistance, 64)
	if err != nil || radiusKm < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Veuillez fournir une distance valide en kilomètres")
	}

	return &listquery.Condition{
		Expr: "ST_DWithin(location, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)",
		Args: []any{lng, lat, geo.KmToMeters(radiusKm)},
	}, nil
}

func parseCoords(coords string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(coords), ",")
	if len(parts) != 2 {
		return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "Veuillez fournir la latitude et la longitude au format lat,lng")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "Latitude invalide")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, pkgerrors.New(pkgerrors.CodeValidation, "Longitude invalide")
	}
	return lat, lng, nil
}
