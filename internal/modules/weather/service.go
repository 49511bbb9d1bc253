package weather

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"guesthouse/internal/metrics"

	"go.uber.org/zap"
)

const iconURLFormat = "https://www.accuweather.com/assets/images/weather-icons/v2a/%d.svg"

// Kimberley is UTC+2 all year.
var guesthouseZone = time.FixedZone("SAST", 2*60*60)

type Location struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Report is the rendered weather card. Optional readings are omitted when
// AccuWeather did not send them.
type Report struct {
	Location    Location `json:"location"`
	Temperature string   `json:"temperature"`
	Description string   `json:"description"`
	FeelsLike   string   `json:"feels_like"`
	Wind        string   `json:"wind"`
	Humidity    string   `json:"humidity"`
	Pressure    string   `json:"pressure"`
	UVIndex     *int     `json:"uv_index,omitempty"`
	UVLabel     string   `json:"uv_label,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
	WindGust    string   `json:"wind_gust,omitempty"`
	DewPoint    string   `json:"dew_point,omitempty"`
	CloudCover  string   `json:"cloud_cover,omitempty"`
	IconCode    int      `json:"icon_code"`
	IconURL     string   `json:"icon_url"`
	Category    Category `json:"category"`
	Symbol      string   `json:"symbol"`
}

type conditionsFetcher interface {
	Current(ctx context.Context) (*Conditions, error)
}

type Service struct {
	client   conditionsFetcher
	location Location
	now      func() time.Time
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewService(client conditionsFetcher, location Location, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		client:   client,
		location: location,
		now:      time.Now,
		log:      log.Named("weather"),
		metrics:  m,
	}
}

func (s *Service) Current(ctx context.Context) (*Report, error) {
	cond, err := s.client.Current(ctx)
	s.metrics.WeatherLookup(err)
	if err != nil {
		s.log.Warn("weather lookup failed", zap.Error(err))
		return nil, err
	}
	return s.render(cond), nil
}

func (s *Service) render(c *Conditions) *Report {
	r := &Report{Location: s.location}

	temp, tempUnit := measure(c.Temperature, "C")
	r.Temperature = fmt.Sprintf("%d°%s", temp, tempUnit)
	r.Description = capitalize(deref(c.WeatherText, ""))

	if c.RealFeelTemperature != nil && c.RealFeelTemperature.Metric != nil {
		feels, unit := measure(c.RealFeelTemperature, tempUnit)
		r.FeelsLike = fmt.Sprintf("%d°%s", feels, unit)
	} else {
		r.FeelsLike = r.Temperature
	}

	var speed int
	var speedUnit, direction string
	if c.Wind != nil {
		speed, speedUnit = measure(c.Wind.Speed, "")
		if c.Wind.Direction != nil {
			direction = deref(c.Wind.Direction.Localized, "")
		}
	}
	r.Wind = strings.TrimSpace(fmt.Sprintf("%d %s %s", speed, speedUnit, direction))
	r.Humidity = fmt.Sprintf("%d%%", deref(c.RelativeHumidity, 0))

	pressure, pressureUnit := measure(c.Pressure, "")
	r.Pressure = strings.TrimSpace(fmt.Sprintf("%d %s", pressure, pressureUnit))

	if c.UVIndex != nil {
		uv := *c.UVIndex
		r.UVIndex = &uv
		r.UVLabel = UVLabel(uv)
	}
	if hasMetric(c.Visibility) {
		v, unit := measure(c.Visibility, "")
		r.Visibility = strings.TrimSpace(fmt.Sprintf("%d %s", v, unit))
	}
	if c.WindGust != nil && hasMetric(c.WindGust.Speed) {
		g, unit := measure(c.WindGust.Speed, "")
		r.WindGust = strings.TrimSpace(fmt.Sprintf("%d %s", g, unit))
	}
	if hasMetric(c.DewPoint) {
		d, unit := measure(c.DewPoint, tempUnit)
		r.DewPoint = fmt.Sprintf("%d°%s", d, unit)
	}
	if c.CloudCover != nil {
		r.CloudCover = fmt.Sprintf("%d%%", *c.CloudCover)
	}

	r.IconCode = deref(c.WeatherIcon, 1)
	r.IconURL = fmt.Sprintf(iconURLFormat, r.IconCode)
	r.Category = CategoryFor(r.IconCode, IsNight(s.now().In(guesthouseZone).Hour()))
	r.Symbol = r.Category.Symbol()
	return r
}

func hasMetric(f *MetricField) bool {
	return f != nil && f.Metric != nil && f.Metric.Value != nil
}

// measure truncates toward zero, matching how the readings are displayed.
func measure(f *MetricField, fallbackUnit string) (int, string) {
	if f == nil || f.Metric == nil {
		return 0, fallbackUnit
	}
	value := 0
	if f.Metric.Value != nil {
		value = int(math.Trunc(*f.Metric.Value))
	}
	return value, deref(f.Metric.Unit, fallbackUnit)
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
