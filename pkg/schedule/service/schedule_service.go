package service

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"

	"krishi/pkg/cropcal"
)

var ErrInvalidInput = errors.New("invalid crop or sowing date")

// CropSchedule is one tracked crop with its projected activities.
type CropSchedule struct {
	Crop       string
	SowingDate civil.Date
	Activities []cropcal.Activity
}

type FarmService interface {
	TrackSowing(ctx context.Context, phone, crop, sowingDate string) error
	Schedules(ctx context.Context, phone string) ([]CropSchedule, error)
	KnownCrops(ctx context.Context) ([]string, error)
}
