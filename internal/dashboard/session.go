package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"weather-dashboard/internal/store"
	"weather-dashboard/internal/weather"
)

// DefaultCity is shown before the user has ever searched.
const DefaultCity = "London"

// dateLabelFormat keys history entries to one calendar day.
const dateLabelFormat = "Jan 2"

// View is the full dashboard payload produced by a successful load.
type View struct {
	Current weather.CurrentObservation `json:"current"`
	Units   weather.Units              `json:"units"`
	Alert   string                     `json:"alert,omitempty"`
	Hourly  weather.ForecastSeries     `json:"hourly"`
	Daily   []weather.DailyForecast    `json:"daily"`
	History []HistoryEntry             `json:"history"`
	Summary *HistorySummary            `json:"summary,omitempty"`
}

// ComparisonEntry is one tracked city's current reading for side-by-side
// display.
type ComparisonEntry struct {
	City string `json:"city"`
	Temp int    `json:"temp"`
	Icon string `json:"icon"`
}

// Session owns the dashboard's mutable state: unit and theme preferences,
// the comparison set, the temperature history, the last searched city and
// the currently held forecast series. Persistence is injected; state is
// loaded at init and saved on every mutation.
type Session struct {
	client *weather.Client
	store  store.Store

	// Guards the per-city comparison fetches; an open circuit is absorbed
	// per item like any other fetch failure.
	breaker *gobreaker.CircuitBreaker

	mu         sync.Mutex
	unit       weather.Units
	theme      Theme
	comparison *ComparisonSet
	history    *History
	lastCity   string
	forecast   weather.ForecastSeries
}

// NewSession restores persisted state from st and returns a ready session.
func NewSession(ctx context.Context, client *weather.Client, st store.Store, historyLimit int) (*Session, error) {
	s := &Session{
		client: client,
		store:  st,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "comparison",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}

	unit, err := s.loadString(ctx, store.KeyUnit)
	if err != nil {
		return nil, err
	}
	s.unit = weather.Units(unit)
	if !s.unit.Valid() {
		s.unit = weather.UnitsMetric
	}

	theme, err := s.loadString(ctx, store.KeyTheme)
	if err != nil {
		return nil, err
	}
	s.theme = Theme(theme)
	if !s.theme.Valid() {
		s.theme = ThemeAuto
	}

	var cities []string
	if err := s.loadJSON(ctx, store.KeyComparison, &cities); err != nil {
		return nil, err
	}
	s.comparison = NewComparisonSet(cities)

	var entries []HistoryEntry
	if err := s.loadJSON(ctx, store.KeyHistory, &entries); err != nil {
		return nil, err
	}
	s.history = NewHistory(entries, historyLimit)

	lastCity, err := s.loadString(ctx, store.KeyLastCity)
	if err != nil {
		return nil, err
	}
	if lastCity == "" {
		lastCity = DefaultCity
	}
	s.lastCity = lastCity

	return s, nil
}

// Search loads the dashboard for a city by name.
func (s *Session) Search(ctx context.Context, city string) (*View, error) {
	return s.load(ctx, weather.Query{City: city, Units: s.Unit()})
}

// Locate loads the dashboard for a coordinate pair.
func (s *Session) Locate(ctx context.Context, lat, lon float64) (*View, error) {
	return s.load(ctx, weather.Query{Lat: &lat, Lon: &lon, Units: s.Unit()})
}

// Refresh re-loads the last searched city, keeping the history window
// current. It is a no-op when no city has ever been loaded.
func (s *Session) Refresh(ctx context.Context) error {
	city := s.LastCity()
	if city == "" {
		return nil
	}
	_, err := s.Search(ctx, city)
	return err
}

// load runs the paired fetch and, on success, updates held state and
// persists the last searched city and the history window.
func (s *Session) load(ctx context.Context, q weather.Query) (*View, error) {
	obs, series, err := s.client.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.forecast = series
	s.lastCity = obs.City
	if err := s.store.Set(ctx, store.KeyLastCity, obs.City); err != nil {
		return nil, fmt.Errorf("persist last city: %w", err)
	}

	s.history.Record(obs, time.Now().Format(dateLabelFormat))
	if err := s.saveJSON(ctx, store.KeyHistory, s.history.Entries()); err != nil {
		return nil, fmt.Errorf("persist history: %w", err)
	}

	view := &View{
		Current: obs,
		Units:   q.Units,
		Hourly:  series.HourlySlice(""),
		Daily:   series.DailySummary(),
		History: s.history.Entries(),
	}
	if msg, ok := weather.ClassifyAlert(obs.ConditionID, obs.Temp, q.Units); ok {
		view.Alert = msg
	}
	if summary, ok := s.history.Summary(); ok {
		view.Summary = &summary
	}

	return view, nil
}

// SelectDay returns the hourly slice of the held forecast series for a
// calendar-day label. An empty label yields the default next-24h window.
func (s *Session) SelectDay(day string) weather.ForecastSeries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forecast.HourlySlice(day)
}

// ToggleUnit flips the unit system, persists it, and re-fetches the last
// searched city so the displayed values match the new unit. The view is nil
// when no city has been loaded yet.
func (s *Session) ToggleUnit(ctx context.Context) (weather.Units, *View, error) {
	s.mu.Lock()
	s.unit = s.unit.Toggle()
	unit := s.unit
	city := s.lastCity
	if err := s.store.Set(ctx, store.KeyUnit, string(unit)); err != nil {
		s.mu.Unlock()
		return "", nil, fmt.Errorf("persist unit: %w", err)
	}
	s.mu.Unlock()

	if city == "" {
		return unit, nil, nil
	}

	view, err := s.Search(ctx, city)
	if err != nil {
		return unit, nil, err
	}
	return unit, view, nil
}

// Unit returns the current unit system.
func (s *Session) Unit() weather.Units {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unit
}

// SetTheme persists a theme preference.
func (s *Session) SetTheme(ctx context.Context, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	if err := s.store.Set(ctx, store.KeyTheme, string(t)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Theme returns the current theme preference.
func (s *Session) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Appearance resolves the theme preference to light or dark. Pass the current
// observation when one is loaded; before any data the resolution falls back
// to a fixed local-hour window.
func (s *Session) Appearance(obs *weather.CurrentObservation, now time.Time) Appearance {
	return resolveAppearance(s.Theme(), obs, now)
}

// AddComparison tracks a city for side-by-side display. Adding a tracked
// city is a no-op.
func (s *Session) AddComparison(ctx context.Context, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.comparison.Add(city) {
		return nil
	}
	return s.saveJSON(ctx, store.KeyComparison, s.comparison.Cities())
}

// RemoveComparison stops tracking a city. Removing an untracked city is a
// no-op.
func (s *Session) RemoveComparison(ctx context.Context, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.comparison.Remove(city) {
		return nil
	}
	return s.saveJSON(ctx, store.KeyComparison, s.comparison.Cities())
}

// ComparisonCities returns the tracked city names.
func (s *Session) ComparisonCities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comparison.Cities()
}

// Comparison fetches the current reading for every tracked city. A city
// whose fetch fails is skipped; the failure never affects the set membership
// or the other cities' results.
func (s *Session) Comparison(ctx context.Context) []ComparisonEntry {
	cities := s.ComparisonCities()
	unit := s.Unit()

	entries := make([]ComparisonEntry, 0, len(cities))
	for _, city := range cities {
		q := weather.Query{City: city, Units: unit}

		result, err := s.breaker.Execute(func() (interface{}, error) {
			return s.client.FetchCurrent(ctx, q)
		})
		if err != nil {
			log.Printf("dashboard: comparison fetch failed for %s: %v", city, err)
			continue
		}

		obs := result.(weather.CurrentObservation)
		entries = append(entries, ComparisonEntry{
			City: obs.City,
			Temp: int(math.Round(obs.Temp)),
			Icon: obs.Icon,
		})
	}

	return entries
}

// History returns the recorded window and its summary. The summary is nil
// when the window is empty.
func (s *Session) History() ([]HistoryEntry, *HistorySummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history.Entries()
	summary, ok := s.history.Summary()
	if !ok {
		return entries, nil
	}
	return entries, &summary
}

// LastCity returns the last successfully loaded city name.
func (s *Session) LastCity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCity
}

func (s *Session) loadString(ctx context.Context, key string) (string, error) {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (s *Session) loadJSON(ctx context.Context, key string, out interface{}) error {
	v, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(v), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Session) saveJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, string(data))
}
