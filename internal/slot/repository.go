package slot

import (
	"context"
	"time"
)

// Repository defines the storage interface for day plans.
type Repository interface {
	// SavePlan stores the plan, replacing any plan saved for the same date.
	SavePlan(ctx context.Context, plan *Plan) error

	// GetPlan retrieves the plan for a date. Returns nil, nil if none exists.
	GetPlan(ctx context.Context, date time.Time) (*Plan, error)

	// ListPlanDates returns the dates that have a stored plan, oldest first.
	ListPlanDates(ctx context.Context) ([]time.Time, error)

	// DeletePlan removes the plan for a date.
	DeletePlan(ctx context.Context, date time.Time) error

	// Close releases any resources held by the repository.
	Close() error
}
