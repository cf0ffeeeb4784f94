package repository

import (
	"context"

	"krishi/entities"
)

type FarmerRepository interface {
	Create(ctx context.Context, f *entities.Farmer) error
	FindByPhone(ctx context.Context, phone string) (*entities.Farmer, error)
	FindByEmail(ctx context.Context, email string) (*entities.Farmer, error)
}
