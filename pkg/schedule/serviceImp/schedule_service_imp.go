package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"krishi/entities"
	"krishi/pkg/cropcal"
	repo "krishi/pkg/schedule/repository"
	"krishi/pkg/schedule/service"
)

type farmSvc struct {
	rules  repo.ScheduleRuleRepository
	events repo.CropEventRepository
	log    *zap.Logger
}

func NewFarmService(rules repo.ScheduleRuleRepository, events repo.CropEventRepository, log *zap.Logger) service.FarmService {
	return &farmSvc{rules: rules, events: events, log: log}
}

func (s *farmSvc) TrackSowing(ctx context.Context, phone, crop, sowingDate string) error {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		return fmt.Errorf("%w: crop is required", service.ErrInvalidInput)
	}
	d, err := cropcal.ParseSowingDate(sowingDate)
	if err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
	}
	return s.events.Upsert(ctx, &entities.CropEvent{FarmerPhone: phone, Crop: crop, SowingDate: d.String()})
}

// Schedules projects every tracked crop against the current rule table.
func (s *farmSvc) Schedules(ctx context.Context, phone string) ([]service.CropSchedule, error) {
	events, err := s.events.ListByFarmer(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("list crop events: %w", err)
	}
	out := make([]service.CropSchedule, 0, len(events))
	for _, ev := range events {
		sown, err := cropcal.ParseSowingDate(ev.SowingDate)
		if err != nil {
			s.log.Warn("skipping crop event with bad sowing date",
				zap.String("farmer_phone", ev.FarmerPhone), zap.String("crop", ev.Crop), zap.Error(err))
			continue
		}
		rules, err := s.rules.ListByCrop(ctx, ev.Crop)
		if err != nil {
			return nil, fmt.Errorf("rules for %s: %w", ev.Crop, err)
		}
		out = append(out, service.CropSchedule{
			Crop:       ev.Crop,
			SowingDate: sown,
			Activities: cropcal.Project(sown, rules),
		})
	}
	return out, nil
}

func (s *farmSvc) KnownCrops(ctx context.Context) ([]string, error) {
	return s.rules.Crops(ctx)
}
