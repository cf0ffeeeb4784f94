// Package reminder triggers the daily crop activity reminder scan.
package reminder

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"krishi/pkg/reminder/service"
)

// Scheduler owns the single cron entry that runs the scan once a day.
type Scheduler struct {
	cron   *cron.Cron
	svc    service.ReminderService
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
	entry  cron.EntryID
	runCtx context.Context
}

// NewScheduler fires at hour:00 every day in loc.
func NewScheduler(svc service.ReminderService, hour int, loc *time.Location, log *zap.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	cronLog := cron.PrintfLogger(zap.NewStdLog(log))
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLog))),
		svc:    svc,
		loc:    loc,
		now:    time.Now,
		log:    log,
		runCtx: context.Background(),
	}
	id, err := s.cron.AddFunc(fmt.Sprintf("0 %d * * *", hour), s.tick)
	if err != nil {
		return nil, fmt.Errorf("reminder schedule: %w", err)
	}
	s.entry = id
	return s, nil
}

// Today is the scan date in the scheduler's zone.
func (s *Scheduler) Today() civil.Date { return civil.DateOf(s.now().In(s.loc)) }

func (s *Scheduler) tick() {
	if _, err := s.svc.RunOnce(s.runCtx, s.Today()); err != nil {
		s.log.Error("reminder check failed", zap.Error(err))
	}
}

// Run starts the cron loop and blocks until ctx is done, then waits for a
// running scan to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runCtx = ctx
	s.cron.Start()
	s.log.Info("reminder scheduler started", zap.Time("next_run", s.Next()))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped")
	return nil
}

func (s *Scheduler) Next() time.Time { return s.cron.Entry(s.entry).Next }
