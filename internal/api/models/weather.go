package models

import (
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
	"github.com/TusharSA25/Weather-Dashboard/pkg/maptile"
)

// Location is a geocoded place candidate, also used as a search
// suggestion.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewLocation converts a domain location.
func NewLocation(l weather.Location) Location {
	return Location{
		Name:    l.Name,
		Country: l.Country,
		State:   l.State,
		Lat:     l.Lat,
		Lon:     l.Lon,
	}
}

// NewLocations converts a domain location slice. The result is never
// nil so empty lists serialize as [].
func NewLocations(ls []weather.Location) []Location {
	out := make([]Location, len(ls))
	for i, l := range ls {
		out[i] = NewLocation(l)
	}
	return out
}

// CurrentWeather is the current-conditions block of a search result.
type CurrentWeather struct {
	City               string    `json:"city"`
	Country            string    `json:"country,omitempty"`
	Temperature        float64   `json:"temperature"`
	DisplayTemperature int       `json:"displayTemperature"`
	FeelsLike          float64   `json:"feelsLike"`
	Humidity           int       `json:"humidity"`
	Pressure           int       `json:"pressure"`
	WindSpeed          float64   `json:"windSpeed"`
	WindKMH            int       `json:"windKmh"`
	WindDeg            int       `json:"windDeg"`
	Condition          string    `json:"condition"`
	Description        string    `json:"description"`
	Glyph              string    `json:"glyph"`
	Sunrise            Timestamp `json:"sunrise"`
	Sunset             Timestamp `json:"sunset"`
	ObservedAt         Timestamp `json:"observedAt"`
}

// NewCurrentWeather converts domain current conditions.
func NewCurrentWeather(c weather.CurrentConditions) CurrentWeather {
	return CurrentWeather{
		City:               c.City,
		Country:            c.Country,
		Temperature:        c.Temperature,
		DisplayTemperature: c.DisplayTemperature(),
		FeelsLike:          c.FeelsLike,
		Humidity:           c.Humidity,
		Pressure:           c.Pressure,
		WindSpeed:          c.WindSpeed,
		WindKMH:            c.WindKMH(),
		WindDeg:            c.WindDeg,
		Condition:          string(c.Condition),
		Description:        c.Description,
		Glyph:              weather.Glyph(c.Condition),
		Sunrise:            Timestamp(c.Sunrise),
		Sunset:             Timestamp(c.Sunset),
		ObservedAt:         Timestamp(c.ObservedAt),
	}
}

// DailyForecast is one reduced daily entry.
type DailyForecast struct {
	Date        Date   `json:"date"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindKMH     int    `json:"windKmh"`
	Icon        string `json:"icon"`
}

// HourlyForecast is one reduced hourly entry.
type HourlyForecast struct {
	Time        Timestamp `json:"time"`
	Temperature int       `json:"temperature"`
	Description string    `json:"description"`
	Glyph       string    `json:"glyph"`
	Humidity    int       `json:"humidity"`
	WindKMH     int       `json:"windKmh"`
}

// Pollutants lists pollutant concentrations in μg/m³.
type Pollutants struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// AirQuality is the air quality block of a search result.
type AirQuality struct {
	Index      int        `json:"index"`
	Label      string     `json:"label"`
	Color      string     `json:"color"`
	Components Pollutants `json:"components"`
	MeasuredAt Timestamp  `json:"measuredAt"`
}

// NewAirQuality converts a domain snapshot. Returns nil for nil input
// so a degraded facet serializes as absent.
func NewAirQuality(s *weather.AirQualitySnapshot) *AirQuality {
	if s == nil {
		return nil
	}
	level := s.Level()
	return &AirQuality{
		Index: s.Index,
		Label: level.Label,
		Color: level.Color,
		Components: Pollutants{
			CO:   s.Components.CO,
			NO:   s.Components.NO,
			NO2:  s.Components.NO2,
			O3:   s.Components.O3,
			SO2:  s.Components.SO2,
			PM25: s.Components.PM25,
			PM10: s.Components.PM10,
			NH3:  s.Components.NH3,
		},
		MeasuredAt: Timestamp(s.MeasuredAt),
	}
}

// WeatherAlert is one active weather alert.
type WeatherAlert struct {
	Sender      string    `json:"sender,omitempty"`
	Event       string    `json:"event"`
	Description string    `json:"description"`
	Start       Timestamp `json:"start"`
	End         Timestamp `json:"end"`
}

// NewWeatherAlerts converts domain alert entries. The result is never
// nil so a degraded facet serializes as [].
func NewWeatherAlerts(alerts []weather.AlertEntry) []WeatherAlert {
	out := make([]WeatherAlert, len(alerts))
	for i, a := range alerts {
		out[i] = WeatherAlert{
			Sender:      a.Sender,
			Event:       a.Event,
			Description: a.Description,
			Start:       Timestamp(a.Start),
			End:         Timestamp(a.End),
		}
	}
	return out
}

// SearchResult is the composed dashboard payload for one city.
type SearchResult struct {
	Location   Location         `json:"location"`
	Current    CurrentWeather   `json:"current"`
	Daily      []DailyForecast  `json:"daily"`
	Hourly     []HourlyForecast `json:"hourly"`
	AirQuality *AirQuality      `json:"airQuality,omitempty"`
	Alerts     []WeatherAlert   `json:"alerts"`
	Tile       *maptile.Tile    `json:"tile,omitempty"`
	Source     string           `json:"source"`
	FetchedAt  Timestamp        `json:"fetchedAt"`
}

// NewSearchResult converts a composed domain result.
func NewSearchResult(result *weather.ComposedResult) *SearchResult {
	daily := make([]DailyForecast, len(result.Daily))
	for i, d := range result.Daily {
		daily[i] = DailyForecast{
			Date:        Date(d.Date),
			Temperature: d.Temperature,
			Description: d.Description,
			Humidity:    d.Humidity,
			WindKMH:     d.WindKMH,
			Icon:        d.Icon,
		}
	}

	hourly := make([]HourlyForecast, len(result.Hourly))
	for i, h := range result.Hourly {
		hourly[i] = HourlyForecast{
			Time:        Timestamp(h.Time),
			Temperature: h.Temperature,
			Description: h.Description,
			Glyph:       h.Glyph,
			Humidity:    h.Humidity,
			WindKMH:     h.WindKMH,
		}
	}

	var tile *maptile.Tile
	if result.Tile.Zoom != 0 {
		t := result.Tile
		tile = &t
	}

	return &SearchResult{
		Location:   NewLocation(result.Location),
		Current:    NewCurrentWeather(result.Current),
		Daily:      daily,
		Hourly:     hourly,
		AirQuality: NewAirQuality(result.AirQuality),
		Alerts:     NewWeatherAlerts(result.Alerts),
		Tile:       tile,
		Source:     string(result.Source),
		FetchedAt:  Timestamp(result.FetchedAt),
	}
}

// AirQualityResponse is the body of GET /api/air-quality/{city}.
type AirQualityResponse struct {
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
	AirQuality  *AirQuality `json:"airQuality"`
}

// AlertsResponse is the body of GET /api/alerts/{city}.
type AlertsResponse struct {
	City   string         `json:"city"`
	Alerts []WeatherAlert `json:"alerts"`
}
