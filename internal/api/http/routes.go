package httpapi

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-app/internal/display"
	"github.com/i474232898/weather-app/internal/weather"
)

// Controller is the display controller shared with the other surfaces.
type Controller interface {
	FetchWait(ctx context.Context, city string) (display.Outcome, error)
	Toggle() (display.View, error)
	View() display.View
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. fetchTimeout
// bounds how long a request waits for its fetch.
func RegisterRoutes(app *fiber.App, ctrl Controller, fetchTimeout time.Duration) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		// A blank city still goes through the controller so that every
		// surface renders the same validation message.
		city := strings.TrimSpace(c.Query("city"))

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		o, err := ctrl.FetchWait(ctx, city)
		if err != nil {
			if errors.Is(err, display.ErrBusy) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.Status(statusFor(o.Err)).JSON(fiber.Map{
			"view":  o.View,
			"error": o.Err,
		})
	})

	v1.Post("/unit/toggle", func(c *fiber.Ctx) error {
		v, err := ctrl.Toggle()
		if err != nil {
			if errors.Is(err, display.ErrBusy) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return err
		}
		return c.JSON(v)
	})

	v1.Get("/view", func(c *fiber.Ctx) error {
		return c.JSON(ctrl.View())
	})
}

func statusFor(rep *weather.ErrorReport) int {
	switch {
	case rep == nil:
		return fiber.StatusOK
	case rep.Kind == weather.KindValidation:
		return fiber.StatusBadRequest
	case rep.Kind == weather.KindHTTPStatus && rep.Status == fiber.StatusNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadGateway
	}
}
