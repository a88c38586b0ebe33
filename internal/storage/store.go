package storage

import (
	"context"

	"fibertract/internal/model"
)

// Store defines persistence operations for simulation records.
type Store interface {
	Init(ctx context.Context) error
	SaveBundle(ctx context.Context, bundle model.BundleRecord) error
	GetBundle(ctx context.Context, name string) (model.BundleRecord, bool, error)
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveActivityHistory(ctx context.Context, runID string, history []uint64) error
	GetActivityHistory(ctx context.Context, runID string) ([]uint64, bool, error)
	SavePainEvents(ctx context.Context, runID string, events []model.PainRecord) error
	GetPainEvents(ctx context.Context, runID string) ([]model.PainRecord, bool, error)
}
