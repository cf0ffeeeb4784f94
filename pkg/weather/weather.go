// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("weather API key not configured")

type Current struct {
	TempC       float64
	Description string
}

type Client struct {
	http   *resty.Client
	apiKey string
}

func New(endpoint, apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(endpoint).SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

func (c *Client) Configured() bool { return c != nil && c.apiKey != "" }

type owmResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current returns metric conditions at (lat, lon).
func (c *Client) Current(ctx context.Context, lat, lon float64) (Current, error) {
	if !c.Configured() {
		return Current{}, ErrNotConfigured
	}
	var out owmResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
			"appid": c.apiKey,
			"units": "metric",
		}).
		SetResult(&out).
		Get("/data/2.5/weather")
	if err != nil {
		return Current{}, fmt.Errorf("weather request: %w", err)
	}
	if resp.IsError() {
		return Current{}, fmt.Errorf("weather request: %s", resp.Status())
	}
	if len(out.Weather) == 0 {
		return Current{}, errors.New("weather response has no conditions")
	}
	return Current{TempC: out.Main.Temp, Description: out.Weather[0].Description}, nil
}
