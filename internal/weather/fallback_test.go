package weather_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	}
}

func TestFallbackProvider_Compose_Shape(t *testing.T) {
	p := weather.NewFallbackProvider(weather.FallbackConfig{
		Rand: rand.New(rand.NewSource(42)),
		Now:  fixedClock(),
	})

	result := p.Compose()

	assert.Equal(t, weather.SourceFallback, result.Source)
	assert.Equal(t, "Amsterdam", result.Location.Name)
	assert.Equal(t, "Amsterdam", result.Current.City)
	require.Len(t, result.Daily, 5)
	require.Len(t, result.Hourly, 24)
	require.NotNil(t, result.AirQuality)
	assert.Equal(t, 3, result.AirQuality.Index)
	assert.Equal(t, "Moderate", result.AirQuality.Level().Label)
	assert.NotNil(t, result.Alerts)
	assert.Empty(t, result.Alerts)

	// Tile address for the reference city at the display zoom.
	assert.Equal(t, 10, result.Tile.Zoom)
	assert.Equal(t, 525, result.Tile.X)
	assert.Equal(t, 336, result.Tile.Y)
}

func TestFallbackProvider_Compose_BoundedValues(t *testing.T) {
	p := weather.NewFallbackProvider(weather.FallbackConfig{
		Rand: rand.New(rand.NewSource(7)),
		Now:  fixedClock(),
	})

	result := p.Compose()

	for _, h := range result.Hourly {
		assert.GreaterOrEqual(t, h.Temperature, 14)
		assert.LessOrEqual(t, h.Temperature, 22)
		assert.GreaterOrEqual(t, h.Humidity, 55)
		assert.LessOrEqual(t, h.Humidity, 85)
		assert.GreaterOrEqual(t, h.WindKMH, 8)
		assert.LessOrEqual(t, h.WindKMH, 26)
		assert.NotEmpty(t, h.Glyph)
	}

	now := fixedClock()()
	for i, h := range result.Hourly {
		assert.True(t, h.Time.After(now.Truncate(time.Hour)), "hourly entry %d is not ahead of now", i)
	}
}

func TestFallbackProvider_Compose_Reproducible(t *testing.T) {
	a := weather.NewFallbackProvider(weather.FallbackConfig{
		Rand: rand.New(rand.NewSource(99)),
		Now:  fixedClock(),
	})
	b := weather.NewFallbackProvider(weather.FallbackConfig{
		Rand: rand.New(rand.NewSource(99)),
		Now:  fixedClock(),
	})

	assert.Equal(t, a.Compose(), b.Compose(), "same seed must produce identical synthetic data")
}

func TestFallbackProvider_Compose_VariedDailyCategories(t *testing.T) {
	p := weather.NewFallbackProvider(weather.FallbackConfig{Now: fixedClock()})

	result := p.Compose()

	descriptions := make(map[string]struct{})
	for _, d := range result.Daily {
		descriptions[d.Description] = struct{}{}
	}
	assert.GreaterOrEqual(t, len(descriptions), 3, "daily entries should cycle through varied categories")

	for i := 1; i < len(result.Daily); i++ {
		assert.Equal(t, result.Daily[i-1].Date.AddDate(0, 0, 1), result.Daily[i].Date, "daily dates must be consecutive")
	}
}
