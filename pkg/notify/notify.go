// Package notify delivers reminders produced by the daily scan.
package notify

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"krishi/pkg/cropcal"
)

type Notifier interface {
	Notify(ctx context.Context, r cropcal.Reminder) error
}

type reminderPayload struct {
	FarmerPhone string `json:"farmer_phone"`
	Crop        string `json:"crop"`
	Activity    string `json:"activity"`
	Date        string `json:"date"`
	Message     string `json:"message"`
}

func payload(r cropcal.Reminder) ([]byte, error) {
	return json.Marshal(reminderPayload{
		FarmerPhone: r.FarmerPhone,
		Crop:        r.Crop,
		Activity:    r.Activity,
		Date:        r.Date.String(),
		Message:     r.Message(),
	})
}

// LogNotifier writes each reminder as a log line.
type LogNotifier struct{ log *zap.Logger }

func NewLog(log *zap.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) Notify(_ context.Context, r cropcal.Reminder) error {
	n.log.Info(r.Message(),
		zap.String("farmer_phone", r.FarmerPhone),
		zap.String("crop", r.Crop),
		zap.String("activity", r.Activity),
		zap.String("date", r.Date.String()),
	)
	return nil
}

type multi []Notifier

// Multi sends to every notifier and joins their errors.
func Multi(ns ...Notifier) Notifier { return multi(ns) }

func (m multi) Notify(ctx context.Context, r cropcal.Reminder) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
