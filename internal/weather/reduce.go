package weather

import (
	"math"
	"time"
)

// ReducerConfig holds the windowing parameters for forecast reduction.
type ReducerConfig struct {
	// MaxDays is the maximum number of daily entries. Default: 5.
	MaxDays int

	// HorizonHours bounds the hourly view ahead of "now". Default: 24.
	HorizonHours int

	// MaxHourly is the maximum number of hourly entries. Default: 24.
	MaxHourly int

	// DayZone is the time zone used to derive calendar-day keys for the
	// daily view. Default: time.Local.
	DayZone *time.Location
}

// DefaultReducerConfig returns the default configuration.
func DefaultReducerConfig() ReducerConfig {
	return ReducerConfig{
		MaxDays:      5,
		HorizonHours: 24,
		MaxHourly:    24,
		DayZone:      time.Local,
	}
}

// Reducer derives the daily and hourly forecast views from a raw
// forecast sample sequence. Both views assume the sequence is already
// in ascending timestamp order, the upstream source's native order,
// and do not re-sort it.
type Reducer struct {
	config ReducerConfig
}

// NewReducer creates a Reducer with the given configuration.
func NewReducer(config ReducerConfig) *Reducer {
	if config.MaxDays <= 0 {
		config.MaxDays = DefaultReducerConfig().MaxDays
	}
	if config.HorizonHours <= 0 {
		config.HorizonHours = DefaultReducerConfig().HorizonHours
	}
	if config.MaxHourly <= 0 {
		config.MaxHourly = DefaultReducerConfig().MaxHourly
	}
	if config.DayZone == nil {
		config.DayZone = time.Local
	}
	return &Reducer{config: config}
}

// DailyView reduces the sample sequence to at most MaxDays entries,
// one per distinct calendar day. The earliest sample of each day wins;
// this is a first-sample-per-day policy, deliberately not a
// noon-preferring one.
func (r *Reducer) DailyView(samples []ForecastSample) []DailyForecastEntry {
	seen := make(map[string]struct{}, r.config.MaxDays)
	entries := make([]DailyForecastEntry, 0, r.config.MaxDays)

	for _, s := range samples {
		local := s.Time.In(r.config.DayZone)
		key := local.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		entries = append(entries, DailyForecastEntry{
			Date:        time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.config.DayZone),
			Temperature: int(math.Round(s.Temperature)),
			Description: s.Description,
			Humidity:    s.Humidity,
			WindKMH:     windToKMH(s.WindSpeed),
			Icon:        s.Icon,
		})
		if len(entries) == r.config.MaxDays {
			break
		}
	}
	return entries
}

// HourlyView reduces the sample sequence to the samples strictly after
// now and at most HorizonHours ahead, capped at MaxHourly entries in
// their original order. Fewer qualifying samples than the cap is a
// normal outcome, not an error.
func (r *Reducer) HourlyView(samples []ForecastSample, now time.Time) []HourlyForecastEntry {
	horizon := now.Add(time.Duration(r.config.HorizonHours) * time.Hour)
	entries := make([]HourlyForecastEntry, 0, r.config.MaxHourly)

	for _, s := range samples {
		if !s.Time.After(now) || s.Time.After(horizon) {
			continue
		}

		entries = append(entries, HourlyForecastEntry{
			Time:        s.Time,
			Temperature: int(math.Round(s.Temperature)),
			Description: s.Description,
			Glyph:       Glyph(s.Condition),
			Humidity:    s.Humidity,
			WindKMH:     windToKMH(s.WindSpeed),
		})
		if len(entries) == r.config.MaxHourly {
			break
		}
	}
	return entries
}
