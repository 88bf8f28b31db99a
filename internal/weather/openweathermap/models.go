package openweathermap

import (
	"time"

	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// Raw OpenWeatherMap response shapes. These are exported because the
// per-facet API endpoints proxy them to the dashboard unchanged; the
// aggregation service converts them to domain types via the To*
// methods below.

// WeatherDescriptor is the category block embedded in every sample.
type WeatherDescriptor struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentWeatherResponse is the /data/2.5/weather payload.
type CurrentWeatherResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []WeatherDescriptor `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust,omitempty"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	ID       int    `json:"id"`
	Name     string `json:"name"`
}

// ToCurrentConditions converts the raw payload to the domain model.
func (r *CurrentWeatherResponse) ToCurrentConditions() weather.CurrentConditions {
	current := weather.CurrentConditions{
		City:        r.Name,
		Country:     r.Sys.Country,
		Lat:         r.Coord.Lat,
		Lon:         r.Coord.Lon,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		Pressure:    r.Main.Pressure,
		WindSpeed:   r.Wind.Speed,
		WindDeg:     r.Wind.Deg,
		Condition:   weather.ConditionOther,
		Sunrise:     time.Unix(r.Sys.Sunrise, 0),
		Sunset:      time.Unix(r.Sys.Sunset, 0),
		ObservedAt:  time.Unix(r.Dt, 0),
	}
	if len(r.Weather) > 0 {
		current.Condition = weather.ParseCondition(r.Weather[0].Main)
		current.Description = r.Weather[0].Description
	}
	return current
}

// ForecastItem is one 3-hour sample of the /data/2.5/forecast list.
type ForecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []WeatherDescriptor `json:"weather"`
	Clouds  struct {
		All int `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust,omitempty"`
	} `json:"wind"`
	Visibility int     `json:"visibility"`
	Pop        float64 `json:"pop"`
	DtTxt      string  `json:"dt_txt"`
}

// ForecastResponse is the /data/2.5/forecast payload: nominally 40
// samples at 3-hour boundaries covering five days, in ascending order.
type ForecastResponse struct {
	Cnt  int            `json:"cnt"`
	List []ForecastItem `json:"list"`
	City struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}

// Samples converts the raw list to domain forecast samples, preserving
// the upstream order.
func (r *ForecastResponse) Samples() []weather.ForecastSample {
	samples := make([]weather.ForecastSample, 0, len(r.List))
	for _, item := range r.List {
		sample := weather.ForecastSample{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Condition:   weather.ConditionOther,
		}
		if len(item.Weather) > 0 {
			sample.Condition = weather.ParseCondition(item.Weather[0].Main)
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	return samples
}

// GeoLocation is one /geo/1.0/direct result.
type GeoLocation struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// ToLocation converts the raw geocoding result to the domain model.
func (g GeoLocation) ToLocation() weather.Location {
	return weather.Location{
		Name:    g.Name,
		Country: g.Country,
		State:   g.State,
		Lat:     g.Lat,
		Lon:     g.Lon,
	}
}

// PollutionComponents holds raw pollutant concentrations in μg/m³.
type PollutionComponents struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// PollutionEntry is one measurement of the /data/2.5/air_pollution list.
type PollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components PollutionComponents `json:"components"`
	Dt         int64               `json:"dt"`
}

// AirPollutionResponse is the /data/2.5/air_pollution payload.
type AirPollutionResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	List []PollutionEntry `json:"list"`
}

// ToSnapshot converts the first measurement to the domain model, or
// nil when the upstream list is empty.
func (r *AirPollutionResponse) ToSnapshot() *weather.AirQualitySnapshot {
	if len(r.List) == 0 {
		return nil
	}
	entry := r.List[0]
	return &weather.AirQualitySnapshot{
		Lat:   r.Coord.Lat,
		Lon:   r.Coord.Lon,
		Index: entry.Main.AQI,
		Components: weather.Pollutants{
			CO:   entry.Components.CO,
			NO:   entry.Components.NO,
			NO2:  entry.Components.NO2,
			O3:   entry.Components.O3,
			SO2:  entry.Components.SO2,
			PM25: entry.Components.PM25,
			PM10: entry.Components.PM10,
			NH3:  entry.Components.NH3,
		},
		MeasuredAt: time.Unix(entry.Dt, 0),
	}
}

// Alert is one government warning from the One Call alerts block.
type Alert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// ToEntry converts the raw alert to the domain model.
func (a Alert) ToEntry() weather.AlertEntry {
	return weather.AlertEntry{
		Sender:      a.SenderName,
		Event:       a.Event,
		Description: a.Description,
		Start:       time.Unix(a.Start, 0),
		End:         time.Unix(a.End, 0),
	}
}

// oneCallResponse is the trimmed One Call payload used for alerts.
type oneCallResponse struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Alerts []Alert `json:"alerts"`
}
