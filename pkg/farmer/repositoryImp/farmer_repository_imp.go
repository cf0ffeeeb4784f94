package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/farmer"
	"krishi/pkg/farmer/repository"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(ctx context.Context, f *entities.Farmer) error {
	err := r.db.WithContext(ctx).Create(f).Error
	if isUniqueViolation(err) {
		return farmer.ErrDuplicate
	}
	return err
}

func (r *farmerRepo) FindByPhone(ctx context.Context, phone string) (*entities.Farmer, error) {
	return r.first(ctx, "phone = ?", phone)
}

func (r *farmerRepo) FindByEmail(ctx context.Context, email string) (*entities.Farmer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *farmerRepo) first(ctx context.Context, where string, arg any) (*entities.Farmer, error) {
	var f entities.Farmer
	err := r.db.WithContext(ctx).Where(where, arg).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, farmer.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// isUniqueViolation covers dialects whose errors gorm does not translate.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
