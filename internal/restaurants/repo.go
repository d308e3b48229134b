package restaurants

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/geo"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
)

// Repository wires restaurant persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new restaurant row.
func (r *Repository) Create(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads the restaurant without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var row models.Restaurant
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update persists the full restaurant row.
func (r *Repository) Update(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes a restaurant; dependent dishes cascade at the database.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Restaurant{}).Error
}

// List executes the translated plan and returns the page plus total count.
func (r *Repository) List(ctx context.Context, plan *listquery.Plan) ([]models.Restaurant, int64, error) {
	var total int64
	if err := plan.ApplyFilters(r.db.WithContext(ctx).Model(&models.Restaurant{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Restaurant
	if err := plan.Apply(r.db.WithContext(ctx).Model(&models.Restaurant{})).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Nearby returns restaurants within radiusKm of the given point, closest
// first. The point argument order is the storage convention, lng before lat.
func (r *Repository) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.Restaurant, error) {
	point := fmt.Sprintf("ST_SetSRID(ST_MakePoint(%f, %f), 4326)::geography", lng, lat)

	var rows []models.Restaurant
	err := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("ST_DWithin(location, "+point+", ?)", geo.KmToMeters(radiusKm)).
		Order("ST_Distance(location, " + point + ")").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
