package serviceImp

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"krishi/pkg/cropcal"
	"krishi/pkg/notify"
	"krishi/pkg/reminder/service"
	schedRepo "krishi/pkg/schedule/repository"
)

type reminderSvc struct {
	rules    schedRepo.ScheduleRuleRepository
	events   schedRepo.CropEventRepository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewReminderService(rules schedRepo.ScheduleRuleRepository, events schedRepo.CropEventRepository,
	notifier notify.Notifier, log *zap.Logger) service.ReminderService {
	return &reminderSvc{rules: rules, events: events, notifier: notifier, log: log}
}

// RunOnce reads the current rule table and every tracked crop, then notifies
// each activity due tomorrow. Notifier failures are logged per reminder.
func (s *reminderSvc) RunOnce(ctx context.Context, today civil.Date) (cropcal.ScanResult, error) {
	s.log.Info("running daily reminder check", zap.String("date", today.String()))

	events, err := s.events.All(ctx)
	if err != nil {
		return cropcal.ScanResult{}, fmt.Errorf("load crop events: %w", err)
	}
	rules, err := s.rules.All(ctx)
	if err != nil {
		return cropcal.ScanResult{}, fmt.Errorf("load schedule rules: %w", err)
	}

	res := cropcal.Scan(today, events, cropcal.MapLookup(cropcal.RulesByCrop(rules)))
	for _, sk := range res.Skipped {
		s.log.Warn("crop event has unreadable sowing date",
			zap.String("farmer_phone", sk.Event.FarmerPhone),
			zap.String("crop", sk.Event.Crop),
			zap.String("sowing_date", sk.Event.SowingDate),
			zap.Error(sk.Err))
	}

	failed := 0
	for _, r := range res.Reminders {
		if err := s.notifier.Notify(ctx, r); err != nil {
			failed++
			s.log.Error("reminder not delivered", zap.String("farmer_phone", r.FarmerPhone), zap.Error(err))
		}
	}
	s.log.Info("reminder check finished",
		zap.String("tomorrow", res.Tomorrow.String()),
		zap.Int("events", len(events)),
		zap.Int("reminders", len(res.Reminders)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("failed", failed))
	return res, nil
}
