// Package maptile converts geographic coordinates into slippy-map tile
// addresses in the standard Web-Mercator pyramid scheme used by
// OpenStreetMap and the OpenWeatherMap tile layers.
// The scheme is documented at: https://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
package maptile

import (
	"fmt"
	"math"
)

// Tile addresses a single raster tile by zoom level and integer x/y
// position within the Web-Mercator pyramid.
type Tile struct {
	Zoom int `json:"zoom"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

// At returns the tile containing the given coordinate at the given zoom.
//
// Valid domain: lat in [-90, 90], lon in [-180, 180], zoom >= 0.
// The Web-Mercator projection is singular at the poles (tan/sec blow up
// at lat = ±90); callers must exclude or clamp polar latitudes first,
// e.g. with ClampLat. This is a precondition, not a recoverable error.
func At(lat, lon float64, zoom int) Tile {
	n := float64(int(1) << uint(zoom))

	x := int(math.Floor((lon + 180) / 360 * n))

	latRad := lat * math.Pi / 180
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	return Tile{Zoom: zoom, X: x, Y: y}
}

// MaxMercatorLat is the highest latitude representable in Web-Mercator;
// tiles above it do not exist in the standard pyramid.
const MaxMercatorLat = 85.0511287798066

// ClampLat clamps a latitude into the Web-Mercator representable range
// [-MaxMercatorLat, MaxMercatorLat].
func ClampLat(lat float64) float64 {
	if lat > MaxMercatorLat {
		return MaxMercatorLat
	}
	if lat < -MaxMercatorLat {
		return -MaxMercatorLat
	}
	return lat
}

// Path returns the /{z}/{x}/{y} path fragment used by tile servers.
func (t Tile) Path() string {
	return fmt.Sprintf("/%d/%d/%d", t.Zoom, t.X, t.Y)
}
