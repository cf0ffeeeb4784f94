package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"krishi/entities"
	"krishi/pkg/advisory/service"
	"krishi/pkg/ai"
	"krishi/pkg/weather"
)

const (
	msgWeatherUnavailable = "Weather data unavailable."
	defaultDescription    = "clear sky"
	rainRecommendation    = "Recommendation: Avoid spraying pesticides or applying fertilizer today."
)

type WeatherSource interface {
	Current(ctx context.Context, lat, lon float64) (weather.Current, error)
}

type advisorySvc struct {
	weather WeatherSource
	llm     ai.Client
	log     *zap.Logger
}

func NewAdvisoryService(w WeatherSource, llm ai.Client, log *zap.Logger) service.AdvisoryService {
	return &advisorySvc{weather: w, llm: llm, log: log}
}

func (s *advisorySvc) Advise(ctx context.Context, f *entities.Farmer, lat, lon float64) string {
	text, description := msgWeatherUnavailable, defaultDescription

	cur, err := s.weather.Current(ctx, lat, lon)
	switch {
	case err == nil:
		description = cur.Description
		text = fmt.Sprintf("🌦️ Weather: Current temperature is %s°C with %s.",
			strconv.FormatFloat(cur.TempC, 'f', -1, 64), description)
		if strings.Contains(description, "rain") || strings.Contains(description, "storm") {
			text += "\n" + rainRecommendation
		}
	case errors.Is(err, weather.ErrNotConfigured):
	default:
		s.log.Warn("weather lookup failed", zap.Error(err))
	}

	if !s.llm.Configured() {
		return text
	}
	pest, err := s.llm.Generate(ctx, pestPrompt(f, description), nil)
	if err != nil {
		s.log.Warn("pest advisory failed", zap.Error(err))
		return text
	}
	return text + "\n\n🦟 AI Advisory: " + strings.TrimSpace(pest)
}

func pestPrompt(f *entities.Farmer, description string) string {
	location, crop := "N/A", "N/A"
	if f != nil && f.Location != "" {
		location = f.Location
	}
	if f != nil && f.Crop != "" {
		crop = f.Crop
	}
	return fmt.Sprintf("Based on the current weather (%s) in %s for a farmer growing %s, "+
		"what is one proactive pest or disease warning you can give for today? "+
		"Keep the advice short and actionable (1-2 sentences).", description, location, crop)
}
