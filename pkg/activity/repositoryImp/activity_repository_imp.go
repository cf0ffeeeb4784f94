package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"krishi/entities"
	"krishi/pkg/activity/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

func (r *activityRepo) Append(ctx context.Context, e *entities.ActivityLogEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByFarmer returns newest first.
func (r *activityRepo) ListByFarmer(ctx context.Context, phone string) ([]entities.ActivityLogEntry, error) {
	var out []entities.ActivityLogEntry
	err := r.db.WithContext(ctx).Where("farmer_phone = ?", phone).
		Order("timestamp DESC").Order("id DESC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
