// Package gateway relays dashboard weather requests to the upstream
// provider, attaching the server-held API key so it never reaches clients.
package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// Gateway is a pure relay: one upstream attempt per call, no retries, no
// caching, upstream status and body passed through verbatim.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a Gateway. baseURL is the upstream provider root, e.g.
// "https://api.openweathermap.org/data/2.5".
func New(httpClient *http.Client, baseURL, apiKey string) *Gateway {
	return &Gateway{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Register mounts the relay endpoint on the Fiber app.
func (g *Gateway) Register(app *fiber.App) {
	app.Get("/api/weather", g.Relay)
}

// Relay handles one proxied weather request.
func (g *Gateway) Relay(c *fiber.Ctx) error {
	if g.apiKey == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Server configuration error: API key missing.",
		})
	}

	endpoint := c.Query("endpoint")
	if endpoint != "weather" && endpoint != "forecast" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid weather endpoint requested.",
		})
	}

	values := url.Values{}
	values.Set("appid", g.apiKey)
	if q := c.Query("q"); q != "" {
		values.Set("q", q)
	}
	lat, lon := c.Query("lat"), c.Query("lon")
	if lat != "" && lon != "" {
		values.Set("lat", lat)
		values.Set("lon", lon)
	}
	if units := c.Query("units"); units != "" {
		values.Set("units", units)
	}

	u := fmt.Sprintf("%s/%s?%s", g.baseURL, endpoint, values.Encode())
	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, u, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Network error communicating with OpenWeather.",
			"details": err.Error(),
		})
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Network error communicating with OpenWeather.",
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(body) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse OpenWeather API response.",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(resp.StatusCode).Send(body)
}
