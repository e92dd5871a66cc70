package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/dashboard"
	"weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, session *dashboard.Session) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		req, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var view *dashboard.View
		if req.City != "" {
			view, err = session.Search(c.Context(), req.City)
		} else {
			view, err = session.Locate(c.Context(), *req.Lat, *req.Lon)
		}
		if err != nil {
			return lookupError(err)
		}

		return c.JSON(viewResponse{
			View:       view,
			Appearance: session.Appearance(&view.Current, time.Now()),
		})
	})

	v1.Get("/forecast/hourly", func(c *fiber.Ctx) error {
		day := c.Query("day")
		return c.JSON(fiber.Map{
			"day":    day,
			"points": session.SelectDay(day),
		})
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		entries, summary := session.History()
		return c.JSON(fiber.Map{
			"entries": entries,
			"summary": summary,
		})
	})

	v1.Get("/compare", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities":  session.ComparisonCities(),
			"results": session.Comparison(c.Context()),
		})
	})

	v1.Post("/compare", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := session.AddComparison(c.Context(), req.City); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save comparison list")
		}
		return c.JSON(fiber.Map{"cities": session.ComparisonCities()})
	})

	v1.Delete("/compare", func(c *fiber.Ctx) error {
		req, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := session.RemoveComparison(c.Context(), req.City); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save comparison list")
		}
		return c.JSON(fiber.Map{"cities": session.ComparisonCities()})
	})

	v1.Post("/preferences/unit", func(c *fiber.Ctx) error {
		unit, view, err := session.ToggleUnit(c.Context())
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(fiber.Map{
			"unit": unit,
			"view": view,
		})
	})

	v1.Post("/preferences/theme", func(c *fiber.Ctx) error {
		theme := dashboard.Theme(c.Query("theme"))
		if err := session.SetTheme(c.Context(), theme); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"theme": theme})
	})

	v1.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"unit":       session.Unit(),
			"theme":      session.Theme(),
			"appearance": session.Appearance(nil, time.Now()),
		})
	})
}

// viewResponse decorates a dashboard view with the resolved appearance.
type viewResponse struct {
	*dashboard.View
	Appearance dashboard.Appearance `json:"appearance"`
}

// lookupError maps session lookup failures to user-facing HTTP errors.
func lookupError(err error) error {
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, "City not found")
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Location data not found")
	case errors.Is(err, weather.ErrBadQuery):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
}

// locationQuery holds query parameters identifying a location: a city name
// or a full coordinate pair, never both.
type locationQuery struct {
	City string
	Lat  *float64
	Lon  *float64
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" || lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return q, errors.New("lat must be a number")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return q, errors.New("lon must be a number")
		}
		q.Lat = &lat
		q.Lon = &lon
	}

	hasCoords := q.Lat != nil && q.Lon != nil
	if (q.City != "") == hasCoords {
		return q, errors.New("provide either city or lat and lon")
	}

	return q, nil
}

// cityQuery holds the single required city parameter of the comparison
// endpoints.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: c.Query("city")}

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
