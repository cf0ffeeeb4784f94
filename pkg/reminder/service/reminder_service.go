package service

import (
	"context"

	"cloud.google.com/go/civil"

	"krishi/pkg/cropcal"
)

// ReminderService runs one reminder scan for the given day. Running it twice
// for the same day sends the same reminders twice.
type ReminderService interface {
	RunOnce(ctx context.Context, today civil.Date) (cropcal.ScanResult, error)
}
