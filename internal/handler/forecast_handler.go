package handler

import (
	"errors"
	"strconv"
	"time"

	"go-stockpilot/internal/forecast"

	"github.com/gofiber/fiber/v2"
)

type ForecastHandler struct {
	store *forecast.Store
}

func NewForecastHandler(store *forecast.Store) *ForecastHandler {
	return &ForecastHandler{store: store}
}

// GetForecast evaluates the pre-trained model for a SKU.
// Query params: date (YYYY-MM-DD, default today), temperature, rainfall,
// holiday (true/false). A missing model is not an error: the response
// carries available=false.
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	sku := c.Params("sku")

	model, err := h.store.Load(sku)
	if err != nil {
		if errors.Is(err, forecast.ErrModelNotFound) {
			return c.JSON(fiber.Map{"sku": sku, "available": false})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load forecast model"})
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
		}
		date = parsed
	}

	temperature, _ := strconv.ParseFloat(c.Query("temperature", "0"), 64)
	rainfall, _ := strconv.ParseFloat(c.Query("rainfall", "0"), 64)
	holiday := c.Query("holiday") == "true" || c.Query("holiday") == "1"

	estimate := model.Predict(forecast.Input{
		Date:        date,
		Temperature: temperature,
		Rainfall:    rainfall,
		Holiday:     holiday,
	})

	return c.JSON(fiber.Map{
		"sku":       model.SKU,
		"available": true,
		"date":      date.Format("2006-01-02"),
		"estimate":  estimate,
	})
}
