package weather

import (
	"errors"
	"fmt"
)

const (
	msgNotConfigured   = "Weather service not configured. Please add AccuWeather API key."
	msgLocationFailed  = "Failed to fetch location data"
	msgLocationMissing = "Location not found"
	msgWeatherFailed   = "Failed to fetch weather data"
	msgWeatherMissing  = "Weather data not available"
	msgUnavailable     = "Weather service temporarily unavailable"
)

var ErrNotConfigured = errors.New("weather api key is missing")

// APIError is a failed AccuWeather step. Message is safe to show to guests.
type APIError struct {
	Step       string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("weather %s: %s: %v", e.Step, e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("weather %s: %s: status %d", e.Step, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("weather %s: %s", e.Step, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.Err }
