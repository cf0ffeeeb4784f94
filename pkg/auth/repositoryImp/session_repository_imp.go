package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/auth/repository"
)

type sessionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SessionRepository { return &sessionRepo{db} }

func (r *sessionRepo) Create(ctx context.Context, s *entities.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindValid returns gorm.ErrRecordNotFound for unknown or expired tokens.
func (r *sessionRepo) FindValid(ctx context.Context, token string, now time.Time) (*entities.Session, error) {
	var s entities.Session
	if err := r.db.WithContext(ctx).Where("token = ? AND expires_at > ?", token, now).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&entities.Session{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entities.Session{})
	return res.RowsAffected, res.Error
}
