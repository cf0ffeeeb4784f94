package service

import (
	"context"
	"errors"
	"time"

	"krishi/entities"
)

var (
	ErrNoSession    = errors.New("no valid session")
	ErrInvalidToken = errors.New("invalid google token")
)

type SessionService interface {
	Start(ctx context.Context, phone string) (token string, expires time.Time, err error)
	Resolve(ctx context.Context, token string) (*entities.Farmer, error)
	End(ctx context.Context, token string) error
	Prune(ctx context.Context) (int64, error)
}

// GoogleIdentity is the subset of a verified Google ID token we use.
type GoogleIdentity struct {
	Email string
	Name  string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleIdentity, error)
}
