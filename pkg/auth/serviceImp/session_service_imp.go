package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/auth/repository"
	"krishi/pkg/auth/service"
	"krishi/pkg/farmer"
	farmerRepo "krishi/pkg/farmer/repository"
)

type sessionSvc struct {
	sessions repository.SessionRepository
	farmers  farmerRepo.FarmerRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions repository.SessionRepository, farmers farmerRepo.FarmerRepository, ttl time.Duration) service.SessionService {
	return &sessionSvc{sessions: sessions, farmers: farmers, ttl: ttl, now: time.Now}
}

func (s *sessionSvc) Start(ctx context.Context, phone string) (string, time.Time, error) {
	sess := &entities.Session{
		Token:       uuid.NewString(),
		FarmerPhone: phone,
		ExpiresAt:   s.now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", time.Time{}, fmt.Errorf("create session: %w", err)
	}
	return sess.Token, sess.ExpiresAt, nil
}

func (s *sessionSvc) Resolve(ctx context.Context, token string) (*entities.Farmer, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, service.ErrNoSession
	}
	sess, err := s.sessions.FindValid(ctx, token, s.now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	f, err := s.farmers.FindByPhone(ctx, sess.FarmerPhone)
	if errors.Is(err, farmer.ErrNotFound) {
		return nil, service.ErrNoSession
	}
	return f, err
}

func (s *sessionSvc) End(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *sessionSvc) Prune(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now().UTC())
}
