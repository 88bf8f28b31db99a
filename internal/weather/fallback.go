package weather

import (
	"math/rand"
	"time"

	"github.com/TusharSA25/Weather-Dashboard/pkg/maptile"
)

// Fallback reference city.
const (
	fallbackCity    = "Amsterdam"
	fallbackCountry = "NL"
	fallbackLat     = 52.3676
	fallbackLon     = 4.9041
)

// Bounds for the synthetic hourly walk.
const (
	fallbackTempMin     = 14 // Celsius
	fallbackTempMax     = 22
	fallbackHumidityMin = 55 // percent
	fallbackHumidityMax = 85
	fallbackWindMin     = 8 // km/h
	fallbackWindMax     = 26
)

// FallbackConfig holds dependencies for the fallback provider.
type FallbackConfig struct {
	// Rand is the random source for the bounded synthetic values.
	// Inject a seeded source for reproducible output. Default: a
	// source seeded with 1.
	Rand *rand.Rand

	// Now returns the current time. Default: time.Now.
	Now func() time.Time
}

// FallbackProvider supplies a synthetic ComposedResult for the fixed
// reference city. The result is structurally identical to a live one;
// only the Source field tells them apart, so the rest of the pipeline
// never branches on where the data came from.
type FallbackProvider struct {
	rand *rand.Rand
	now  func() time.Time
}

// NewFallbackProvider creates a FallbackProvider.
func NewFallbackProvider(cfg FallbackConfig) *FallbackProvider {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &FallbackProvider{rand: cfg.Rand, now: cfg.Now}
}

// fallbackCycle is the condition sequence the synthetic daily and
// hourly entries rotate through.
var fallbackCycle = []struct {
	condition   Condition
	description string
	icon        string
}{
	{ConditionClear, "clear sky", "01d"},
	{ConditionClouds, "scattered clouds", "03d"},
	{ConditionRain, "light rain", "10d"},
	{ConditionDrizzle, "light intensity drizzle", "09d"},
	{ConditionClouds, "broken clouds", "04d"},
}

// Compose returns one synthetic ComposedResult: fixed current
// conditions, five daily entries with varied categories, 24 hourly
// entries with bounded randomized values, a fixed moderate air quality
// snapshot and zero alerts.
func (p *FallbackProvider) Compose() ComposedResult {
	now := p.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	current := CurrentConditions{
		City:        fallbackCity,
		Lat:         fallbackLat,
		Lon:         fallbackLon,
		Temperature: 18.2,
		FeelsLike:   17.8,
		Humidity:    66,
		Pressure:    1014,
		WindSpeed:   4.2,
		WindDeg:     230,
		Condition:   ConditionClouds,
		Description: "scattered clouds",
		Sunrise:     day.Add(6*time.Hour + 45*time.Minute),
		Sunset:      day.Add(20*time.Hour + 30*time.Minute),
		ObservedAt:  now,
	}

	daily := make([]DailyForecastEntry, 0, 5)
	for i := 0; i < 5; i++ {
		c := fallbackCycle[i%len(fallbackCycle)]
		daily = append(daily, DailyForecastEntry{
			Date:        day.AddDate(0, 0, i),
			Temperature: p.intBetween(fallbackTempMin, fallbackTempMax),
			Description: c.description,
			Humidity:    p.intBetween(fallbackHumidityMin, fallbackHumidityMax),
			WindKMH:     p.intBetween(fallbackWindMin, fallbackWindMax),
			Icon:        c.icon,
		})
	}

	start := now.Truncate(time.Hour)
	hourly := make([]HourlyForecastEntry, 0, 24)
	for i := 0; i < 24; i++ {
		c := fallbackCycle[i%len(fallbackCycle)]
		hourly = append(hourly, HourlyForecastEntry{
			Time:        start.Add(time.Duration(i+1) * time.Hour),
			Temperature: p.intBetween(fallbackTempMin, fallbackTempMax),
			Description: c.description,
			Glyph:       Glyph(c.condition),
			Humidity:    p.intBetween(fallbackHumidityMin, fallbackHumidityMax),
			WindKMH:     p.intBetween(fallbackWindMin, fallbackWindMax),
		})
	}

	airQuality := &AirQualitySnapshot{
		Lat:   fallbackLat,
		Lon:   fallbackLon,
		Index: 3,
		Components: Pollutants{
			CO:   201.9,
			NO:   0.4,
			NO2:  18.3,
			O3:   42.1,
			SO2:  1.8,
			PM25: 8.5,
			PM10: 14.2,
			NH3:  0.9,
		},
		MeasuredAt: now,
	}

	return ComposedResult{
		Location: Location{
			Name:    fallbackCity,
			Country: fallbackCountry,
			Lat:     fallbackLat,
			Lon:     fallbackLon,
		},
		Current:    current,
		Daily:      daily,
		Hourly:     hourly,
		AirQuality: airQuality,
		Alerts:     []AlertEntry{},
		Tile:       maptile.At(fallbackLat, fallbackLon, DisplayTileZoom),
		Source:     SourceFallback,
		FetchedAt:  now,
	}
}

// intBetween returns a uniformly random integer in [lo, hi].
func (p *FallbackProvider) intBetween(lo, hi int) int {
	return lo + p.rand.Intn(hi-lo+1)
}
