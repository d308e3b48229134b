package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/tablemaps/tablemaps-backend/pkg/logger"
)

// ResetResult reports the outcome of a daily dish reset run.
type ResetResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type dishResetRepo interface {
	MarkUnavailableBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// DishResetJobParams configure the daily dish reset job.
type DishResetJobParams struct {
	Logger     *logger.Logger
	Repository dishResetRepo
}

// DishResetJob flips yesterday's dishes to unavailable once a day. Dishes
// dated today or later are left alone so pre-scheduled menus survive the run.
type DishResetJob struct {
	logg *logger.Logger
	repo dishResetRepo
	now  func() time.Time
}

func NewDishResetJob(params DishResetJobParams) (*DishResetJob, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("dishes repository required")
	}
	return &DishResetJob{
		logg: params.Logger,
		repo: params.Repository,
		now:  time.Now,
	}, nil
}

func (j *DishResetJob) Name() string { return "dish-daily-reset" }

func (j *DishResetJob) Run(ctx context.Context) error {
	_, err := j.Execute(ctx)
	return err
}

// Execute performs the reset and returns the result shape shared with the
// manual admin trigger.
func (j *DishResetJob) Execute(ctx context.Context) (ResetResult, error) {
	now := j.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	modified, err := j.repo.MarkUnavailableBetween(ctx, yesterday, today)
	if err != nil {
		return ResetResult{}, fmt.Errorf("dish reset: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"window_start":  yesterday,
		"window_end":    today,
		"rows_modified": modified,
	})
	j.logg.Info(logCtx, "daily dish reset complete")

	return ResetResult{
		Success:       true,
		Message:       "Réinitialisation quotidienne effectuée avec succès",
		ModifiedCount: modified,
	}, nil
}
