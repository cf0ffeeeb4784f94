package repository

import (
	"context"

	"krishi/entities"
)

// ScheduleRuleRepository reads the static crop activity table.
type ScheduleRuleRepository interface {
	ListByCrop(ctx context.Context, crop string) ([]entities.ScheduleRule, error)
	All(ctx context.Context) ([]entities.ScheduleRule, error)
	Crops(ctx context.Context) ([]string, error)
}

// CropEventRepository stores one sowing date per (farmer, crop).
type CropEventRepository interface {
	Upsert(ctx context.Context, ev *entities.CropEvent) error
	ListByFarmer(ctx context.Context, phone string) ([]entities.CropEvent, error)
	All(ctx context.Context) ([]entities.CropEvent, error)
}
