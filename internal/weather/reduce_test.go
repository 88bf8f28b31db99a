package weather_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// forecastSeries builds n samples from start at the given step, in
// ascending order like the upstream source delivers them.
func forecastSeries(start time.Time, n int, step time.Duration) []weather.ForecastSample {
	samples := make([]weather.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, weather.ForecastSample{
			Time:        start.Add(time.Duration(i) * step),
			Temperature: 10 + float64(i%10),
			Humidity:    60 + i%20,
			WindSpeed:   3 + float64(i%5),
			Condition:   weather.ConditionClouds,
			Description: "scattered clouds",
			Icon:        "03d",
		})
	}
	return samples
}

func utcReducer() *weather.Reducer {
	cfg := weather.DefaultReducerConfig()
	cfg.DayZone = time.UTC
	return weather.NewReducer(cfg)
}

func TestReducer_DailyView_FirstSamplePerDay(t *testing.T) {
	r := utcReducer()

	// 40 samples at 3h steps from midday cover six calendar days.
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	samples := forecastSeries(start, 40, 3*time.Hour)

	daily := r.DailyView(samples)
	require.Len(t, daily, 5, "six distinct days must be capped at five entries")

	seen := make(map[string]struct{})
	for _, entry := range daily {
		key := entry.Date.Format("2006-01-02")
		_, dup := seen[key]
		assert.False(t, dup, "day %s emitted twice", key)
		seen[key] = struct{}{}
	}

	// The first entry comes from the first sample of day one, not a
	// midday-preferring pick.
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), daily[0].Date)
	assert.Equal(t, 10, daily[0].Temperature)
	assert.Equal(t, "03d", daily[0].Icon)
}

func TestReducer_DailyView_EarliestSampleWins(t *testing.T) {
	r := utcReducer()

	day := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	samples := []weather.ForecastSample{
		{Time: day, Temperature: 3.4, Humidity: 81, WindSpeed: 5, Description: "light rain", Icon: "10d"},
		{Time: day.Add(12 * time.Hour), Temperature: 19.9, Humidity: 40, WindSpeed: 1, Description: "clear sky", Icon: "01d"},
	}

	daily := r.DailyView(samples)
	require.Len(t, daily, 1)
	assert.Equal(t, 3, daily[0].Temperature)
	assert.Equal(t, "light rain", daily[0].Description)
	assert.Equal(t, "10d", daily[0].Icon)
}

func TestReducer_DailyView_FewerDaysThanCap(t *testing.T) {
	r := utcReducer()

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	samples := forecastSeries(start, 8, 3*time.Hour) // one day only

	daily := r.DailyView(samples)
	require.Len(t, daily, 1)
}

func TestReducer_DailyView_RoundingAndUnits(t *testing.T) {
	r := utcReducer()

	samples := []weather.ForecastSample{{
		Time:        time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		Temperature: 14.5,
		Humidity:    72,
		WindSpeed:   5.0, // 18 km/h
		Description: "broken clouds",
		Icon:        "04d",
	}}

	daily := r.DailyView(samples)
	require.Len(t, daily, 1)
	assert.Equal(t, 15, daily[0].Temperature)
	assert.Equal(t, 18, daily[0].WindKMH)
	assert.Equal(t, 72, daily[0].Humidity)
}

func TestReducer_DailyView_DayKeyUsesConfiguredZone(t *testing.T) {
	cfg := weather.DefaultReducerConfig()
	cfg.DayZone = time.FixedZone("UTC+2", 2*3600)
	r := weather.NewReducer(cfg)

	// Both samples fall on March 11 in UTC+2 even though the first is
	// still March 10 in UTC.
	samples := []weather.ForecastSample{
		{Time: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)},
		{Time: time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)},
	}

	daily := r.DailyView(samples)
	require.Len(t, daily, 1)
	assert.Equal(t, 11, daily[0].Date.Day())
}

func TestReducer_DailyView_Empty(t *testing.T) {
	r := utcReducer()
	assert.Empty(t, r.DailyView(nil))
}

func TestReducer_HourlyView_WindowBounds(t *testing.T) {
	r := utcReducer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	samples := []weather.ForecastSample{
		{Time: now.Add(-time.Hour)},     // past, excluded
		{Time: now},                     // not strictly after now, excluded
		{Time: now.Add(time.Hour)},      // in window
		{Time: now.Add(3 * time.Hour)},  // in window
		{Time: now.Add(24 * time.Hour)}, // exactly on the horizon, included
		{Time: now.Add(25 * time.Hour)}, // beyond horizon, excluded
	}

	hourly := r.HourlyView(samples, now)
	require.Len(t, hourly, 3)
	for _, entry := range hourly {
		assert.True(t, entry.Time.After(now), "entry %v must be strictly after now", entry.Time)
		assert.False(t, entry.Time.After(now.Add(24*time.Hour)), "entry %v must be within 24h", entry.Time)
	}
}

func TestReducer_HourlyView_CapsEntries(t *testing.T) {
	r := utcReducer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 30 qualifying samples at 30m steps; cap is 24.
	samples := forecastSeries(now.Add(30*time.Minute), 30, 30*time.Minute)

	hourly := r.HourlyView(samples, now)
	require.Len(t, hourly, 24)
	assert.Equal(t, samples[0].Time, hourly[0].Time, "original order preserved")
}

func TestReducer_HourlyView_GlyphAndUnits(t *testing.T) {
	r := utcReducer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	samples := []weather.ForecastSample{{
		Time:        now.Add(2 * time.Hour),
		Temperature: 20.5,
		Humidity:    64,
		WindSpeed:   3.0, // 10.8 km/h
		Condition:   weather.ConditionRain,
		Description: "moderate rain",
		Icon:        "10n",
	}}

	hourly := r.HourlyView(samples, now)
	require.Len(t, hourly, 1)
	assert.Equal(t, 21, hourly[0].Temperature)
	assert.Equal(t, 11, hourly[0].WindKMH)
	assert.Equal(t, weather.Glyph(weather.ConditionRain), hourly[0].Glyph)
}

func TestReducer_HourlyView_AllPast(t *testing.T) {
	r := utcReducer()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	samples := forecastSeries(now.Add(-40*time.Hour), 8, 3*time.Hour)
	assert.Empty(t, r.HourlyView(samples, now))
}
