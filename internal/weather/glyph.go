package weather

// DefaultGlyph is shown for categories without a dedicated glyph.
const DefaultGlyph = "🌡️"

// Glyph returns the display glyph for a condition. The mapping is total
// over the Condition set; ConditionOther and anything unexpected get
// DefaultGlyph.
func Glyph(c Condition) string {
	switch c {
	case ConditionClear:
		return "☀️"
	case ConditionClouds:
		return "☁️"
	case ConditionRain:
		return "🌧️"
	case ConditionSnow:
		return "❄️"
	case ConditionThunderstorm:
		return "⛈️"
	case ConditionDrizzle:
		return "🌦️"
	case ConditionMist, ConditionFog, ConditionHaze:
		return "🌫️"
	case ConditionSmoke:
		return "💨"
	case ConditionDust, ConditionSand:
		return "🏜️"
	case ConditionAsh:
		return "🌋"
	case ConditionSquall:
		return "🌬️"
	case ConditionTornado:
		return "🌪️"
	case ConditionOther:
		return DefaultGlyph
	default:
		return DefaultGlyph
	}
}
