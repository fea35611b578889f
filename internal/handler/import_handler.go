package handler

import (
	"strconv"

	"go-stockpilot/internal/importer"

	"github.com/gofiber/fiber/v2"
)

type ImportHandler struct {
	importer *importer.Importer
}

func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: im}
}

// ImportCSV runs the product/category import pipeline on an uploaded file.
// Multipart field: file. Query params: dry_run (true/false), limit.
func (h *ImportHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing 'file' upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read upload"})
	}
	defer file.Close()

	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	opts := importer.Options{
		DryRun: c.Query("dry_run") == "true" || c.Query("dry_run") == "1",
		Limit:  limit,
	}

	summary, err := h.importer.Run(c.Context(), file, opts)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Import complete", "summary": summary})
}
