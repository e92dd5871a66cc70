package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const currentPayload = `{
	"name": "London",
	"dt": 1704106800,
	"main": {"temp": 7.4, "humidity": 81},
	"wind": {"speed": 4.1},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"sys": {"country": "GB", "sunrise": 1704096000, "sunset": 1704124800}
}`

const forecastPayload = `{
	"list": [
		{"dt": 1704110400, "dt_txt": "2024-01-01 12:00:00",
		 "main": {"temp": 8.2, "temp_min": 6.1, "temp_max": 9.3, "humidity": 75},
		 "wind": {"speed": 3.5},
		 "weather": [{"id": 500, "description": "light rain", "icon": "10d"}]},
		{"dt": 1704121200, "dt_txt": "2024-01-01 15:00:00",
		 "main": {"temp": 7.9, "temp_min": 6.0, "temp_max": 8.8, "humidity": 78},
		 "wind": {"speed": 3.1},
		 "weather": [{"id": 803, "description": "broken clouds", "icon": "04d"}]}
	]
}`

// fakeUpstream serves both provider endpoints, optionally failing one of them.
func fakeUpstream(t *testing.T, failEndpoint string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather":
			if failEndpoint == "weather" {
				http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(currentPayload))
		case "/forecast":
			if failEndpoint == "forecast" {
				http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(forecastPayload))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetchPairedSuccess(t *testing.T) {
	upstream := fakeUpstream(t, "")
	defer upstream.Close()

	client := NewClient(upstream.Client(), upstream.URL, "test-key")
	obs, series, err := client.Fetch(context.Background(), Query{City: "London", Units: UnitsMetric})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if obs.City != "London" || obs.Country != "GB" {
		t.Fatalf("unexpected location: %s, %s", obs.City, obs.Country)
	}
	if obs.ConditionID != 500 || obs.Condition != "Rain" {
		t.Fatalf("unexpected condition: %d %s", obs.ConditionID, obs.Condition)
	}
	if obs.Sunrise != 1704096000 || obs.Sunset != 1704124800 {
		t.Fatalf("sun times not carried through")
	}

	if len(series) != 2 {
		t.Fatalf("expected 2 forecast points, got %d", len(series))
	}
	if series[0].LocalTime != "2024-01-01 12:00:00" || series[0].TempMax != 9.3 {
		t.Fatalf("unexpected first forecast point: %+v", series[0])
	}
}

func TestFetchFailsWhenEitherRequestFails(t *testing.T) {
	for _, fail := range []string{"weather", "forecast"} {
		upstream := fakeUpstream(t, fail)

		client := NewClient(upstream.Client(), upstream.URL, "test-key")
		obs, series, err := client.Fetch(context.Background(), Query{City: "Nowhere", Units: UnitsMetric})
		if !errors.Is(err, ErrCityNotFound) {
			t.Fatalf("fail=%s: expected ErrCityNotFound, got %v", fail, err)
		}

		// No partial result may leak out.
		if obs != (CurrentObservation{}) || series != nil {
			t.Fatalf("fail=%s: partial result surfaced", fail)
		}

		upstream.Close()
	}
}

func TestFetchCoordinateModeError(t *testing.T) {
	upstream := fakeUpstream(t, "forecast")
	defer upstream.Close()

	lat, lon := 51.5, -0.12
	client := NewClient(upstream.Client(), upstream.URL, "test-key")
	_, _, err := client.Fetch(context.Background(), Query{Lat: &lat, Lon: &lon, Units: UnitsMetric})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	upstream := fakeUpstream(t, "")
	upstream.Close() // connection refused from here on

	client := NewClient(http.DefaultClient, upstream.URL, "test-key")
	_, _, err := client.Fetch(context.Background(), Query{City: "London", Units: UnitsMetric})
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound on transport failure, got %v", err)
	}
}

func TestFetchRejectsAmbiguousQuery(t *testing.T) {
	client := NewClient(http.DefaultClient, "http://unused", "test-key")

	if _, _, err := client.Fetch(context.Background(), Query{}); !errors.Is(err, ErrBadQuery) {
		t.Fatalf("expected ErrBadQuery for empty query, got %v", err)
	}

	lat, lon := 1.0, 2.0
	q := Query{City: "London", Lat: &lat, Lon: &lon}
	if _, _, err := client.Fetch(context.Background(), q); !errors.Is(err, ErrBadQuery) {
		t.Fatalf("expected ErrBadQuery for double-mode query, got %v", err)
	}
}

func TestFetchCurrentOnly(t *testing.T) {
	upstream := fakeUpstream(t, "forecast") // forecast failure must not matter
	defer upstream.Close()

	client := NewClient(upstream.Client(), upstream.URL, "test-key")
	obs, err := client.FetchCurrent(context.Background(), Query{City: "London", Units: UnitsMetric})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obs.City != "London" {
		t.Fatalf("unexpected city %s", obs.City)
	}
}
