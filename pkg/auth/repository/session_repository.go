package repository

import (
	"context"
	"time"

	"krishi/entities"
)

type SessionRepository interface {
	Create(ctx context.Context, s *entities.Session) error
	FindValid(ctx context.Context, token string, now time.Time) (*entities.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
