package weather

// Condition is the closed set of weather category tokens the upstream
// source emits, plus ConditionOther for anything outside it. Behavior
// keyed on a Condition (glyphs, display hints) must be written as a
// total mapping over this set so a new category shows up as a visible
// gap instead of a silent fallthrough.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionSnow         Condition = "Snow"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionMist         Condition = "Mist"
	ConditionFog          Condition = "Fog"
	ConditionHaze         Condition = "Haze"
	ConditionSmoke        Condition = "Smoke"
	ConditionDust         Condition = "Dust"
	ConditionSand         Condition = "Sand"
	ConditionAsh          Condition = "Ash"
	ConditionSquall       Condition = "Squall"
	ConditionTornado      Condition = "Tornado"
	ConditionOther        Condition = "Other"
)

// ParseCondition maps an upstream category token to its Condition.
// The match is case-sensitive and exact; unrecognized tokens become
// ConditionOther.
func ParseCondition(token string) Condition {
	switch Condition(token) {
	case ConditionClear, ConditionClouds, ConditionRain, ConditionSnow,
		ConditionThunderstorm, ConditionDrizzle, ConditionMist,
		ConditionFog, ConditionHaze, ConditionSmoke, ConditionDust,
		ConditionSand, ConditionAsh, ConditionSquall, ConditionTornado:
		return Condition(token)
	default:
		return ConditionOther
	}
}
