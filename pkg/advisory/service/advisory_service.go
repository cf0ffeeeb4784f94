package service

import (
	"context"

	"krishi/entities"
)

type AdvisoryService interface {
	// Advise never fails; missing weather or LLM just shortens the text.
	Advise(ctx context.Context, farmer *entities.Farmer, lat, lon float64) string
}
