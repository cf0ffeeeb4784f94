package repositoryImp

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"krishi/entities"
	"krishi/pkg/schedule/repository"
)

type ruleRepo struct{ db *gorm.DB }

func NewRuleRepository(db *gorm.DB) repository.ScheduleRuleRepository { return &ruleRepo{db} }

func (r *ruleRepo) ListByCrop(ctx context.Context, crop string) ([]entities.ScheduleRule, error) {
	var out []entities.ScheduleRule
	if err := r.db.WithContext(ctx).Where("crop_name = ?", crop).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ruleRepo) All(ctx context.Context) ([]entities.ScheduleRule, error) {
	var out []entities.ScheduleRule
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ruleRepo) Crops(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).Model(&entities.ScheduleRule{}).
		Distinct("crop_name").Order("crop_name ASC").Pluck("crop_name", &out).Error
	return out, err
}

type eventRepo struct{ db *gorm.DB }

func NewCropEventRepository(db *gorm.DB) repository.CropEventRepository { return &eventRepo{db} }

// Upsert keeps the latest sowing date for the (farmer, crop) pair.
func (r *eventRepo) Upsert(ctx context.Context, ev *entities.CropEvent) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "farmer_phone"}, {Name: "crop"}},
		DoUpdates: clause.AssignmentColumns([]string{"sowing_date", "updated_at"}),
	}).Create(ev).Error
}

func (r *eventRepo) ListByFarmer(ctx context.Context, phone string) ([]entities.CropEvent, error) {
	var out []entities.CropEvent
	if err := r.db.WithContext(ctx).Where("farmer_phone = ?", phone).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) All(ctx context.Context) ([]entities.CropEvent, error) {
	var out []entities.CropEvent
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
