package dishes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
	"github.com/tablemaps/tablemaps-backend/pkg/listquery"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.WithContext(ctx).
		Preload("WeeklySchedule", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("day_of_week ASC")
		}).
		First(&dish, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *Repository) Update(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := r.db.WithContext(ctx).Save(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Dish{}, "id = ?", id).Error
}

func (r *Repository) List(ctx context.Context, plan *listquery.Plan) ([]models.Dish, int64, error) {
	var total int64
	if err := plan.ApplyFilters(r.db.WithContext(ctx).Model(&models.Dish{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Dish
	if err := plan.Apply(r.db.WithContext(ctx).Model(&models.Dish{})).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) FindByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Dish, error) {
	var rows []models.Dish
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// AvailableBetween returns dishes flagged available whose available_date
// falls inside [from, to).
func (r *Repository) AvailableBetween(ctx context.Context, from, to time.Time) ([]models.Dish, error) {
	var rows []models.Dish
	err := r.db.WithContext(ctx).
		Where("available_date >= ? AND available_date < ?", from, to).
		Where("is_available = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) AvailableByWeekday(ctx context.Context, dayOfWeek int) ([]models.Dish, error) {
	var rows []models.Dish
	err := r.db.WithContext(ctx).
		Distinct("dishes.*").
		Joins("JOIN dish_schedule_entries ON dish_schedule_entries.dish_id = dishes.id").
		Where("dish_schedule_entries.day_of_week = ?", dayOfWeek).
		Where("dish_schedule_entries.is_available = ?", true).
		Where("dishes.is_available = ?", true).
		Order("dishes.created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ReplaceSchedule swaps the whole weekly plan in one transaction.
func (r *Repository) ReplaceSchedule(ctx context.Context, dishID uuid.UUID, entries []models.DishScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dish_id = ?", dishID).Delete(&models.DishScheduleEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].DishID = dishID
		}
		return tx.Create(&entries).Error
	})
}

// MarkUnavailableBetween clears the availability flag for dishes dated
// inside [from, to) and reports how many rows changed.
func (r *Repository) MarkUnavailableBetween(ctx context.Context, from, to time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Dish{}).
		Where("available_date >= ? AND available_date < ?", from, to).
		Where("is_available = ?", true).
		Update("is_available", false)
	return res.RowsAffected, res.Error
}

func (r *Repository) RestaurantOwner(ctx context.Context, restaurantID uuid.UUID) (*uuid.UUID, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Select("id", "owner").
		First(&restaurant, "id = ?", restaurantID).Error
	if err != nil {
		return nil, err
	}
	return restaurant.OwnerID, nil
}
