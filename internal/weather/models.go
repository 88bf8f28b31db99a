package weather

import (
	"errors"
	"math"
	"time"

	"github.com/TusharSA25/Weather-Dashboard/pkg/maptile"
)

// Weather errors.
var (
	ErrCityNotFound        = errors.New("city not found")
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrMissingAPIKey       = errors.New("weather api key not configured")
)

// Location is a geocoded place. Identity for de-duplication purposes is
// (Name, Country, State); coordinates are informational.
type Location struct {
	Name    string
	Country string
	State   string
	Lat     float64
	Lon     float64
}

// CurrentConditions represents the live weather at a location.
//
// Temperature and wind speed keep their precise upstream values
// (Celsius and m/s); rounding and the m/s to km/h conversion happen in
// the display helpers so downstream computation is not fed rounded data.
type CurrentConditions struct {
	City        string
	Country     string
	Lat         float64
	Lon         float64
	Temperature float64 // Celsius
	FeelsLike   float64 // Celsius
	Humidity    int     // percent
	Pressure    int     // hPa
	WindSpeed   float64 // m/s
	WindDeg     int     // degrees (0-360, 0=N)
	Condition   Condition
	Description string
	Sunrise     time.Time
	Sunset      time.Time
	ObservedAt  time.Time
}

// DisplayTemperature returns the temperature rounded for display.
func (c *CurrentConditions) DisplayTemperature() int {
	return int(math.Round(c.Temperature))
}

// WindKMH returns the wind speed converted to km/h and rounded.
func (c *CurrentConditions) WindKMH() int {
	return windToKMH(c.WindSpeed)
}

// windToKMH converts a wind speed in m/s to km/h, rounded for display.
func windToKMH(ms float64) int {
	return int(math.Round(ms * 3.6))
}

// ForecastSample is one raw upstream forecast unit, nominally on a
// 3-hour boundary. The upstream source provides 40 samples covering
// five days, already in ascending timestamp order.
type ForecastSample struct {
	Time        time.Time
	Temperature float64 // Celsius
	Humidity    int     // percent
	WindSpeed   float64 // m/s
	Condition   Condition
	Description string
	Icon        string // upstream icon code, e.g. "10d"
}

// DailyForecastEntry is one reduced day of forecast, derived from the
// earliest sample of its calendar day.
type DailyForecastEntry struct {
	Date        time.Time // day granularity, midnight in the reduction zone
	Temperature int       // Celsius, rounded
	Description string
	Humidity    int // percent
	WindKMH     int
	Icon        string // raw upstream icon code
}

// HourlyForecastEntry is one reduced near-term forecast sample within
// the next 24 hours.
type HourlyForecastEntry struct {
	Time        time.Time
	Temperature int // Celsius, rounded
	Description string
	Glyph       string // resolved via the condition glyph table
	Humidity    int    // percent
	WindKMH     int
}

// AirQualitySnapshot carries the upstream air quality classification
// for a coordinate. The ordinal is passed through from the upstream
// five-level scale, never recomputed from the raw concentrations.
type AirQualitySnapshot struct {
	Lat        float64
	Lon        float64
	Index      int // 1 (good) to 5 (very poor)
	Components Pollutants
	MeasuredAt time.Time
}

// Pollutants holds raw pollutant concentrations in μg/m³.
type Pollutants struct {
	CO   float64
	NO   float64
	NO2  float64
	O3   float64
	SO2  float64
	PM25 float64
	PM10 float64
	NH3  float64
}

// AlertEntry is one government weather warning. Zero alerts for a
// query is a normal outcome, not an error.
type AlertEntry struct {
	Sender      string
	Event       string
	Description string
	Start       time.Time
	End         time.Time
}

// DisplayTileZoom is the zoom level composed results address their map
// tile at, matching the dashboard's map viewport.
const DisplayTileZoom = 10

// Source says which path produced a ComposedResult.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// ComposedResult is the single aggregate produced by one search. Once
// current conditions resolve, a ComposedResult always exists; any other
// facet may be degraded to its empty value after a tolerated failure.
type ComposedResult struct {
	Location   Location
	Current    CurrentConditions
	Daily      []DailyForecastEntry
	Hourly     []HourlyForecastEntry
	AirQuality *AirQualitySnapshot // nil when the facet degraded
	Alerts     []AlertEntry
	Tile       maptile.Tile
	Source     Source
	FetchedAt  time.Time
}
