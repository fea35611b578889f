package handler

import (
	"strconv"

	"go-stockpilot/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	expiry service.ExpiryService
}

func NewReportHandler(expiry service.ExpiryService) *ReportHandler {
	return &ReportHandler{expiry: expiry}
}

// GetExpiryReport buckets the active inventory into expired, expiring-soon
// and safe. Query params: days (horizon, default 30), category.
func (h *ReportHandler) GetExpiryReport(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = service.DefaultExpiryHorizonDays
	}

	report, err := h.expiry.Classify(c.Context(), days, c.Query("category"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build expiry report"})
	}

	return c.JSON(report)
}
