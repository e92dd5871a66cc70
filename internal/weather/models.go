package weather

import (
	"errors"
	"strings"
)

// Units selects both the upstream encoding and display formatting.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Toggle flips between the two unit systems.
func (u Units) Toggle() Units {
	if u == UnitsImperial {
		return UnitsMetric
	}
	return UnitsImperial
}

// TempSymbol returns the display symbol for temperatures in this unit system.
func (u Units) TempSymbol() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// SpeedUnit returns the display unit for wind speeds in this unit system.
func (u Units) SpeedUnit() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Valid reports whether u is one of the two supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

var (
	// ErrBadQuery is returned when a query populates neither or both location modes.
	ErrBadQuery = errors.New("query must set exactly one of city or coordinates")

	// ErrCityNotFound is returned when a city-mode lookup fails for any reason.
	ErrCityNotFound = errors.New("city not found")

	// ErrLocationNotFound is returned when a coordinate-mode lookup fails for any reason.
	ErrLocationNotFound = errors.New("location data not found")
)

// Query describes one weather lookup: a city name or a coordinate pair,
// plus the unit system to request.
type Query struct {
	City  string
	Lat   *float64
	Lon   *float64
	Units Units
}

// ByCoordinates reports whether the query is in coordinate mode.
func (q Query) ByCoordinates() bool {
	return q.Lat != nil && q.Lon != nil
}

// Validate enforces the exactly-one-location-mode invariant.
func (q Query) Validate() error {
	hasCity := q.City != ""
	if hasCity == q.ByCoordinates() {
		return ErrBadQuery
	}
	return nil
}

// notFoundErr returns the lookup error matching the query's location mode.
func (q Query) notFoundErr() error {
	if q.ByCoordinates() {
		return ErrLocationNotFound
	}
	return ErrCityNotFound
}

// CurrentObservation is a single point-in-time weather reading for a location.
// Timestamps are Unix seconds as reported by the provider.
type CurrentObservation struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temp        float64 `json:"temp"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	ConditionID int     `json:"conditionId"`
	Condition   string  `json:"condition"` // provider condition group, e.g. "Rain"
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	ObservedAt  int64   `json:"observedAt"`
	Sunrise     int64   `json:"sunrise"`
	Sunset      int64   `json:"sunset"`
}

// Daytime reports whether the observation was taken between the location's
// sunrise and sunset.
func (o CurrentObservation) Daytime() bool {
	return o.ObservedAt > o.Sunrise && o.ObservedAt < o.Sunset
}

// ForecastPoint is one 3-hour reading in a forecast series.
type ForecastPoint struct {
	Timestamp   int64   `json:"timestamp"`
	LocalTime   string  `json:"localTime"` // "2006-01-02 15:04:05" as sent by the provider
	Temp        float64 `json:"temp"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	ConditionID int     `json:"conditionId"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// DateLabel returns the calendar-day prefix ("2006-01-02") of the point's local time.
func (p ForecastPoint) DateLabel() string {
	if i := strings.IndexByte(p.LocalTime, ' '); i > 0 {
		return p.LocalTime[:i]
	}
	return p.LocalTime
}

// ForecastSeries is a time-ordered sequence of forecast points at a fixed
// 3-hour cadence, as produced by the provider.
type ForecastSeries []ForecastPoint
