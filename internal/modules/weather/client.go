// Package weather fetches current conditions for the guesthouse's city from
// AccuWeather and shapes them into the card shown on the location screen.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type ClientConfig struct {
	BaseURL string
	APIKey  string
	City    string
	Country string
	Timeout time.Duration
}

// Conditions mirrors the currentconditions payload. Every field may be
// absent.
type Conditions struct {
	WeatherText         *string      `json:"WeatherText"`
	WeatherIcon         *int         `json:"WeatherIcon"`
	IsDayTime           *bool        `json:"IsDayTime"`
	Temperature         *MetricField `json:"Temperature"`
	RealFeelTemperature *MetricField `json:"RealFeelTemperature"`
	RelativeHumidity    *int         `json:"RelativeHumidity"`
	Wind                *Wind        `json:"Wind"`
	WindGust            *WindGust    `json:"WindGust"`
	Pressure            *MetricField `json:"Pressure"`
	Visibility          *MetricField `json:"Visibility"`
	UVIndex             *int         `json:"UVIndex"`
	CloudCover          *int         `json:"CloudCover"`
	DewPoint            *MetricField `json:"DewPoint"`
}

type MetricField struct {
	Metric *Measure `json:"Metric"`
}

type Measure struct {
	Value *float64 `json:"Value"`
	Unit  *string  `json:"Unit"`
}

type Wind struct {
	Speed     *MetricField   `json:"Speed"`
	Direction *WindDirection `json:"Direction"`
}

type WindDirection struct {
	Degrees   *int    `json:"Degrees"`
	Localized *string `json:"Localized"`
	English   *string `json:"English"`
}

type WindGust struct {
	Speed *MetricField `json:"Speed"`
}

type location struct {
	Key string `json:"Key"`
}

// Client performs the two-step lookup: city search for a location key, then
// current conditions for that key. Both calls share one circuit breaker.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewClient(cfg ClientConfig, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	log = log.Named("weather.client")
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "accuweather",
		Timeout: 30 * time.Second,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		log:     log,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.APIKey != "YOUR_ACCUWEATHER_API_KEY"
}

func (c *Client) Current(ctx context.Context) (*Conditions, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	key, err := c.locationKey(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("apikey", c.cfg.APIKey)
	q.Set("details", "true")
	var list []Conditions
	if err := c.getJSON(ctx, "conditions", "/currentconditions/v1/"+url.PathEscape(key), q, msgWeatherFailed, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &APIError{Step: "conditions", Message: msgWeatherMissing}
	}
	return &list[0], nil
}

func (c *Client) locationKey(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("apikey", c.cfg.APIKey)
	q.Set("q", c.cfg.City)
	q.Set("country", c.cfg.Country)

	var list []location
	if err := c.getJSON(ctx, "location", "/locations/v1/cities/search", q, msgLocationFailed, &list); err != nil {
		return "", err
	}
	if len(list) == 0 || list[0].Key == "" {
		return "", &APIError{Step: "location", Message: msgLocationMissing}
	}
	return list[0].Key, nil
}

func (c *Client) getJSON(ctx context.Context, step, path string, q url.Values, failMsg string, out any) error {
	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, step, path, q, failMsg)
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return &APIError{Step: step, Message: msgUnavailable, Err: err}
		}
		return &APIError{Step: step, Message: failMsg, Err: err}
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return &APIError{Step: step, Message: failMsg, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, step, path string, q url.Values, failMsg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("accuweather request failed", zap.String("step", step), zap.Int("status", resp.StatusCode))
		return nil, &APIError{Step: step, StatusCode: resp.StatusCode, Message: failMsg}
	}
	return body, nil
}
