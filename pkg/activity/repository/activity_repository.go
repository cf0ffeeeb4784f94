package repository

import (
	"context"

	"krishi/entities"
)

type ActivityRepository interface {
	Append(ctx context.Context, e *entities.ActivityLogEntry) error
	ListByFarmer(ctx context.Context, phone string) ([]entities.ActivityLogEntry, error)
}
