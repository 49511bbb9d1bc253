package weather

import "slices"

type Category string

const (
	CategoryClear        Category = "clear"
	CategoryClearNight   Category = "clear_night"
	CategoryPartlyCloudy Category = "partly_cloudy"
	CategoryCloudy       Category = "cloudy"
	CategoryRain         Category = "rain"
	CategoryStorm        Category = "storm"
	CategorySnow         Category = "snow"
)

var (
	clearCodes  = []int{1, 2, 33, 34}
	partlyCodes = []int{3, 4, 6, 35, 36, 38}
	cloudyCodes = []int{7, 8}
	rainCodes   = []int{12, 13, 14, 18, 26, 39, 40}
	stormCodes  = []int{15, 16, 17, 41, 42}
	snowCodes   = []int{19, 20, 21, 22, 23, 24, 25, 29, 30, 31}
)

var symbols = map[Category]string{
	CategoryClear:        "☀️",
	CategoryClearNight:   "🌙",
	CategoryPartlyCloudy: "⛅",
	CategoryCloudy:       "☁️",
	CategoryRain:         "🌧️",
	CategoryStorm:        "⛈️",
	CategorySnow:         "❄️",
}

// CategoryFor maps an AccuWeather icon code to a display category.
// Codes 33 and above in the clear group are night icons regardless of the
// clock.
func CategoryFor(icon int, night bool) Category {
	switch {
	case slices.Contains(clearCodes, icon):
		if night || icon >= 33 {
			return CategoryClearNight
		}
		return CategoryClear
	case slices.Contains(partlyCodes, icon):
		return CategoryPartlyCloudy
	case slices.Contains(cloudyCodes, icon):
		return CategoryCloudy
	case slices.Contains(rainCodes, icon):
		return CategoryRain
	case slices.Contains(stormCodes, icon):
		return CategoryStorm
	case slices.Contains(snowCodes, icon):
		return CategorySnow
	default:
		return CategoryCloudy
	}
}

func (c Category) Symbol() string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return symbols[CategoryCloudy]
}

// IsNight reports whether hour (0-23) falls between 19:00 and 07:00.
func IsNight(hour int) bool {
	return hour >= 19 || hour < 7
}

func UVLabel(uv int) string {
	switch {
	case uv <= 2:
		return "Low"
	case uv <= 5:
		return "Moderate"
	case uv <= 7:
		return "High"
	case uv <= 10:
		return "Very High"
	default:
		return "Extreme"
	}
}
