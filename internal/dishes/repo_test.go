package dishes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tablemaps/tablemaps-backend/pkg/db/models"
)

func setupDishesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	restaurants := `
CREATE TABLE IF NOT EXISTS restaurants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  location TEXT,
  phone TEXT,
  email TEXT,
  cuisine TEXT,
  opening_hours TEXT,
  owner TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	dishes := `
CREATE TABLE IF NOT EXISTS dishes (
  id TEXT PRIMARY KEY,
  restaurant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price TEXT NOT NULL,
  image TEXT,
  dietary_options TEXT,
  ingredients TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  available_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	scheduleEntries := `
CREATE TABLE IF NOT EXISTS dish_schedule_entries (
  id TEXT PRIMARY KEY,
  dish_id TEXT NOT NULL,
  day_of_week INTEGER NOT NULL,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`

	for _, stmt := range []string{restaurants, dishes, scheduleEntries} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"dish_schedule_entries", "dishes", "restaurants"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func insertRestaurant(t *testing.T, db *gorm.DB, owner *uuid.UUID) uuid.UUID {
	t.Helper()
	restaurant := models.Restaurant{
		ID:      uuid.New(),
		Name:    "Chez Louise",
		Address: "12 rue des Lilas",
		OwnerID: owner,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant.ID
}

func insertDish(t *testing.T, repo *Repository, restaurantID uuid.UUID, name string, available bool, availableDate time.Time) *models.Dish {
	t.Helper()
	dish := &models.Dish{
		ID:            uuid.New(),
		RestaurantID:  restaurantID,
		Name:          name,
		Price:         decimal.NewFromFloat(12.50),
		IsAvailable:   available,
		AvailableDate: availableDate,
	}
	created, err := repo.Create(context.Background(), dish)
	require.NoError(t, err)
	return created
}

func TestRepositoryFindByRestaurant(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantA := insertRestaurant(t, db, nil)
	restaurantB := insertRestaurant(t, db, nil)
	insertDish(t, repo, restaurantA, "Boeuf bourguignon", true, time.Now())
	insertDish(t, repo, restaurantA, "Ratatouille", true, time.Now())
	insertDish(t, repo, restaurantB, "Quiche lorraine", true, time.Now())

	rows, err := repo.FindByRestaurant(ctx, restaurantA)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, restaurantA, row.RestaurantID)
	}
}

func TestRepositoryMarkUnavailableBetween(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	yesterday := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)

	stale := insertDish(t, repo, restaurantID, "Soupe du jour", true, yesterday)
	fresh := insertDish(t, repo, restaurantID, "Tarte tatin", true, today)
	alreadyOff := insertDish(t, repo, restaurantID, "Cassoulet", false, yesterday)

	from := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	affected, err := repo.MarkUnavailableBetween(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	reloaded, err := repo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)

	untouched, err := repo.FindByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.True(t, untouched.IsAvailable)

	off, err := repo.FindByID(ctx, alreadyOff.ID)
	require.NoError(t, err)
	assert.False(t, off.IsAvailable)
}

func TestRepositoryAvailableBetween(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	today := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	insertDish(t, repo, restaurantID, "Plat du jour", true, today)
	insertDish(t, repo, restaurantID, "Plat de la veille", true, today.Add(-24*time.Hour))
	insertDish(t, repo, restaurantID, "Plat retiré", false, today)

	from := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	rows, err := repo.AvailableBetween(ctx, from, from.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Plat du jour", rows[0].Name)
}

func TestRepositoryReplaceScheduleSwapsEntries(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	dish := insertDish(t, repo, restaurantID, "Couscous", true, time.Now())

	first := []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 1},
		{ID: uuid.New(), DayOfWeek: 3},
	}
	require.NoError(t, repo.ReplaceSchedule(ctx, dish.ID, first))

	second := []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 5, IsAvailable: true},
	}
	require.NoError(t, repo.ReplaceSchedule(ctx, dish.ID, second))

	reloaded, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.WeeklySchedule, 1)
	assert.Equal(t, 5, reloaded.WeeklySchedule[0].DayOfWeek)
	assert.Equal(t, dish.ID, reloaded.WeeklySchedule[0].DishID)
}

func TestRepositoryAvailableByWeekday(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	monday := insertDish(t, repo, restaurantID, "Plat du lundi", true, time.Now())
	friday := insertDish(t, repo, restaurantID, "Plat du vendredi", true, time.Now())

	require.NoError(t, repo.ReplaceSchedule(ctx, monday.ID, []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 1, IsAvailable: true},
	}))
	require.NoError(t, repo.ReplaceSchedule(ctx, friday.ID, []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 5, IsAvailable: true},
	}))

	rows, err := repo.AvailableByWeekday(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, monday.ID, rows[0].ID)
}

func TestRepositoryRestaurantOwner(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	owned := insertRestaurant(t, db, &ownerID)
	orphan := insertRestaurant(t, db, nil)

	got, err := repo.RestaurantOwner(ctx, owned)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ownerID, *got)

	got, err = repo.RestaurantOwner(ctx, orphan)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = repo.RestaurantOwner(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryAvailableByWeekdayHonorsDishFlag(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	availableDate := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)
	dish := insertDish(t, repo, restaurantID, "Plat du jeudi", true, availableDate)
	require.NoError(t, repo.ReplaceSchedule(ctx, dish.ID, []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 4, IsAvailable: true},
	}))

	rows, err := repo.AvailableByWeekday(ctx, 4)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	from := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	affected, err := repo.MarkUnavailableBetween(ctx, from, from.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	rows, err = repo.AvailableByWeekday(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestRepositoryAvailableByWeekdayDeduplicatesEntries(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	dish := insertDish(t, repo, restaurantID, "Plat du mardi", true, time.Now())
	require.NoError(t, repo.ReplaceSchedule(ctx, dish.ID, []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 2, IsAvailable: true},
		{ID: uuid.New(), DayOfWeek: 2, IsAvailable: true},
	}))

	rows, err := repo.AvailableByWeekday(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRepositoryPersistsExplicitFalseAvailability(t *testing.T) {
	db := setupDishesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	restaurantID := insertRestaurant(t, db, nil)
	dish := insertDish(t, repo, restaurantID, "Plat retiré", false, time.Now())

	reloaded, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)

	require.NoError(t, repo.ReplaceSchedule(ctx, dish.ID, []models.DishScheduleEntry{
		{ID: uuid.New(), DayOfWeek: 3, IsAvailable: false},
	}))
	reloaded, err = repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.WeeklySchedule, 1)
	assert.False(t, reloaded.WeeklySchedule[0].IsAvailable)
}
