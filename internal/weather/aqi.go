package weather

// AQILevel is one step of the upstream five-level air quality scale,
// with the color token the dashboard renders it in.
type AQILevel struct {
	Label string
	Color string
}

// AQIUnknown is the level for ordinals outside the 1-5 scale.
var AQIUnknown = AQILevel{Label: "Unknown", Color: "#9e9e9e"}

// AQILevelFor maps an upstream AQI ordinal to its display level. The
// mapping is total: anything outside 1-5 gets AQIUnknown.
func AQILevelFor(index int) AQILevel {
	switch index {
	case 1:
		return AQILevel{Label: "Good", Color: "#4caf50"}
	case 2:
		return AQILevel{Label: "Fair", Color: "#8bc34a"}
	case 3:
		return AQILevel{Label: "Moderate", Color: "#ffc107"}
	case 4:
		return AQILevel{Label: "Poor", Color: "#ff7043"}
	case 5:
		return AQILevel{Label: "Very Poor", Color: "#b71c1c"}
	default:
		return AQIUnknown
	}
}

// Level returns the display level for the snapshot's ordinal.
func (s *AirQualitySnapshot) Level() AQILevel {
	return AQILevelFor(s.Index)
}
