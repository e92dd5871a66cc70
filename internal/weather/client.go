package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// DefaultBaseURL is the upstream provider root for current and forecast data.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current observations and forecast series from the provider.
// With an empty apiKey it can be pointed at a key-injecting relay instead of
// the provider itself.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Client. baseURL defaults to the provider root when empty.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Fetch issues the current and forecast requests for one query concurrently.
// It succeeds only when both succeed; any failure collapses to a single
// mode-specific lookup error and no partial result is returned.
func (c *Client) Fetch(ctx context.Context, q Query) (CurrentObservation, ForecastSeries, error) {
	if err := q.Validate(); err != nil {
		return CurrentObservation{}, nil, err
	}

	var (
		wg          sync.WaitGroup
		obs         CurrentObservation
		series      ForecastSeries
		obsErr      error
		forecastErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		obs, obsErr = c.fetchCurrent(ctx, q)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		series, forecastErr = c.fetchForecast(ctx, q)
	}()

	wg.Wait()

	if obsErr != nil {
		log.Printf("weather: current fetch failed: %v", obsErr)
		return CurrentObservation{}, nil, q.notFoundErr()
	}
	if forecastErr != nil {
		log.Printf("weather: forecast fetch failed: %v", forecastErr)
		return CurrentObservation{}, nil, q.notFoundErr()
	}

	return obs, series, nil
}

// FetchCurrent fetches only the current observation for a query. Used for the
// per-city comparison refresh, which has no use for the forecast half.
func (c *Client) FetchCurrent(ctx context.Context, q Query) (CurrentObservation, error) {
	if err := q.Validate(); err != nil {
		return CurrentObservation{}, err
	}
	obs, err := c.fetchCurrent(ctx, q)
	if err != nil {
		return CurrentObservation{}, q.notFoundErr()
	}
	return obs, nil
}

func (c *Client) fetchCurrent(ctx context.Context, q Query) (CurrentObservation, error) {
	body, err := c.get(ctx, "weather", q)
	if err != nil {
		return CurrentObservation{}, err
	}

	var payload struct {
		Name string `json:"name"`
		Dt   int64  `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Sys struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return CurrentObservation{}, fmt.Errorf("decode current payload: %w", err)
	}

	obs := CurrentObservation{
		City:       payload.Name,
		Country:    payload.Sys.Country,
		Temp:       payload.Main.Temp,
		Humidity:   payload.Main.Humidity,
		WindSpeed:  payload.Wind.Speed,
		ObservedAt: payload.Dt,
		Sunrise:    payload.Sys.Sunrise,
		Sunset:     payload.Sys.Sunset,
	}
	if len(payload.Weather) > 0 {
		obs.ConditionID = payload.Weather[0].ID
		obs.Condition = payload.Weather[0].Main
		obs.Description = payload.Weather[0].Description
		obs.Icon = payload.Weather[0].Icon
	}

	return obs, nil
}

func (c *Client) fetchForecast(ctx context.Context, q Query) (ForecastSeries, error) {
	body, err := c.get(ctx, "forecast", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []struct {
			Dt    int64  `json:"dt"`
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				TempMin  float64 `json:"temp_min"`
				TempMax  float64 `json:"temp_max"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Weather []struct {
				ID          int    `json:"id"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode forecast payload: %w", err)
	}

	series := make(ForecastSeries, 0, len(payload.List))
	for _, item := range payload.List {
		p := ForecastPoint{
			Timestamp: item.Dt,
			LocalTime: item.DtTxt,
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			p.ConditionID = item.Weather[0].ID
			p.Description = item.Weather[0].Description
			p.Icon = item.Weather[0].Icon
		}
		series = append(series, p)
	}

	return series, nil
}

// get issues a single GET against the given provider endpoint. One attempt,
// no retries.
func (c *Client) get(ctx context.Context, endpoint string, q Query) ([]byte, error) {
	values := url.Values{}
	if c.apiKey != "" {
		values.Set("appid", c.apiKey)
	}
	if q.ByCoordinates() {
		values.Set("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(*q.Lon, 'f', -1, 64))
	} else {
		values.Set("q", q.City)
	}
	if q.Units != "" {
		values.Set("units", string(q.Units))
	}

	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	return body, nil
}
