package weather

import (
	"math"
	"strings"
	"time"
)

// hourlyWindow is how many 3-hour points make up the default "next ~24h" view.
const hourlyWindow = 8

// noonMarker is the time-of-day the provider uses as the representative
// reading for a day.
const noonMarker = "12:00:00"

// DailyForecast is a one-reading-per-day summary derived from a series.
type DailyForecast struct {
	DayName     string `json:"dayName"`
	MaxTemp     int    `json:"maxTemp"`
	MinTemp     int    `json:"minTemp"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// HourlySlice returns the hourly view of the series. With an empty day it
// returns the first 8 points; with a calendar-day label it returns every
// point on that day, in original order. A day with no points yields an
// empty slice, not an error.
func (s ForecastSeries) HourlySlice(day string) ForecastSeries {
	if day == "" {
		if len(s) > hourlyWindow {
			return s[:hourlyWindow]
		}
		return s
	}

	out := ForecastSeries{}
	for _, p := range s {
		if p.DateLabel() == day {
			out = append(out, p)
		}
	}
	return out
}

// DailySummary reduces the series to its noon-marked points, one per day, in
// original order. Days lacking a noon sample are simply absent.
func (s ForecastSeries) DailySummary() []DailyForecast {
	out := []DailyForecast{}
	for _, p := range s {
		if !strings.Contains(p.LocalTime, noonMarker) {
			continue
		}
		out = append(out, DailyForecast{
			DayName:     dayName(p.LocalTime),
			MaxTemp:     roundTemp(p.TempMax),
			MinTemp:     roundTemp(p.TempMin),
			Icon:        p.Icon,
			Description: p.Description,
			Date:        p.DateLabel(),
		})
	}
	return out
}

// roundTemp rounds to the nearest whole degree for display.
func roundTemp(t float64) int {
	return int(math.Round(t))
}

// dayName derives the short weekday name from a provider local-time string.
func dayName(localTime string) string {
	ts, err := time.Parse("2006-01-02 15:04:05", localTime)
	if err != nil {
		return ""
	}
	return ts.Weekday().String()[:3]
}
