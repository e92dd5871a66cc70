package weather

import "testing"

// threeHourSeries builds a series covering two full days plus a partial third
// day at the provider's 3-hour cadence.
func threeHourSeries() ForecastSeries {
	times := []string{
		"2024-01-01 00:00:00", "2024-01-01 03:00:00", "2024-01-01 06:00:00", "2024-01-01 09:00:00",
		"2024-01-01 12:00:00", "2024-01-01 15:00:00", "2024-01-01 18:00:00", "2024-01-01 21:00:00",
		"2024-01-02 00:00:00", "2024-01-02 03:00:00", "2024-01-02 06:00:00", "2024-01-02 09:00:00",
		"2024-01-02 12:00:00", "2024-01-02 15:00:00", "2024-01-02 18:00:00", "2024-01-02 21:00:00",
		"2024-01-03 00:00:00", "2024-01-03 03:00:00",
	}

	series := make(ForecastSeries, 0, len(times))
	for i, ts := range times {
		series = append(series, ForecastPoint{
			Timestamp:   int64(1704067200 + i*10800),
			LocalTime:   ts,
			Temp:        float64(10 + i),
			TempMin:     9.4,
			TempMax:     15.6,
			Icon:        "10d",
			Description: "light rain",
		})
	}
	return series
}

func TestHourlySliceDefaultWindow(t *testing.T) {
	series := threeHourSeries()

	got := series.HourlySlice("")
	if len(got) != 8 {
		t.Fatalf("expected 8 points, got %d", len(got))
	}
	for i, p := range got {
		if p.LocalTime != series[i].LocalTime {
			t.Fatalf("point %d: expected prefix of series, got %s", i, p.LocalTime)
		}
	}
}

func TestHourlySliceShortSeries(t *testing.T) {
	series := threeHourSeries()[:3]

	got := series.HourlySlice("")
	if len(got) != 3 {
		t.Fatalf("expected all 3 points of a short series, got %d", len(got))
	}
}

func TestHourlySliceByDay(t *testing.T) {
	series := threeHourSeries()

	got := series.HourlySlice("2024-01-02")
	if len(got) != 8 {
		t.Fatalf("expected 8 points for a full day, got %d", len(got))
	}
	for i, p := range got {
		if p.DateLabel() != "2024-01-02" {
			t.Fatalf("point %d has wrong date label %s", i, p.DateLabel())
		}
		if i > 0 && p.Timestamp < got[i-1].Timestamp {
			t.Fatalf("points out of original order at index %d", i)
		}
	}

	partial := series.HourlySlice("2024-01-03")
	if len(partial) != 2 {
		t.Fatalf("expected 2 points for the partial day, got %d", len(partial))
	}
}

func TestHourlySliceUnknownDay(t *testing.T) {
	series := threeHourSeries()

	got := series.HourlySlice("2024-02-15")
	if len(got) != 0 {
		t.Fatalf("expected empty slice for an absent day, got %d points", len(got))
	}
}

func TestDailySummaryNoonSelection(t *testing.T) {
	series := threeHourSeries()

	got := series.DailySummary()
	if len(got) != 2 {
		t.Fatalf("expected 2 noon-marked days, got %d", len(got))
	}

	if got[0].Date != "2024-01-01" || got[1].Date != "2024-01-02" {
		t.Fatalf("unexpected dates: %s, %s", got[0].Date, got[1].Date)
	}
	if got[0].DayName != "Mon" || got[1].DayName != "Tue" {
		t.Fatalf("unexpected day names: %s, %s", got[0].DayName, got[1].DayName)
	}
	if got[0].MaxTemp != 16 || got[0].MinTemp != 9 {
		t.Fatalf("expected rounded temps 16/9, got %d/%d", got[0].MaxTemp, got[0].MinTemp)
	}
	if got[0].Icon != "10d" || got[0].Description != "light rain" {
		t.Fatalf("unexpected icon/description: %s %s", got[0].Icon, got[0].Description)
	}
}

func TestDailySummaryMissingNoon(t *testing.T) {
	// The partial third day has no noon sample and must simply be absent.
	series := threeHourSeries()

	for _, d := range series.DailySummary() {
		if d.Date == "2024-01-03" {
			t.Fatalf("day without noon sample should be omitted")
		}
	}
}

func TestDailySummaryEmptySeries(t *testing.T) {
	got := ForecastSeries{}.DailySummary()
	if len(got) != 0 {
		t.Fatalf("expected empty summary, got %d entries", len(got))
	}
}
