package weather

// Alert messages keyed to provider condition code ranges. The rules are
// ordered and the first match wins.
const (
	alertThunderstorm = "Warning: Thunderstorm conditions detected."
	alertSnow         = "Advisory: Snow expected."
	alertTornado      = "DANGER: Tornado detected in area."
	alertExtremeHeat  = "Warning: Extreme High Temperature."
)

// ClassifyAlert maps a condition code and temperature to a user-facing alert
// message. The boolean is false when no rule matches.
func ClassifyAlert(conditionID int, temp float64, units Units) (string, bool) {
	switch {
	case conditionID >= 200 && conditionID < 300:
		return alertThunderstorm, true
	case conditionID >= 600 && conditionID < 603:
		return alertSnow, true
	case conditionID == 781:
		return alertTornado, true
	case units == UnitsMetric && temp > 38:
		return alertExtremeHeat, true
	case units == UnitsImperial && temp > 100:
		return alertExtremeHeat, true
	}
	return "", false
}
