package importer

import (
	"strconv"
	"strings"
	"time"

	"go-stockpilot/internal/model"

	"github.com/shopspring/decimal"
)

// safePrice parses a price cell, returning zero on blank or malformed
// input. Import never rejects a row over an unparsable price.
func safePrice(val string) decimal.Decimal {
	val = strings.TrimSpace(val)
	if val == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// safeInt parses a quantity cell, accepting float spellings like "12.0"
// and truncating them. Returns zero on blank or malformed input.
func safeInt(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// parseDate parses YYYY-MM-DD, returning nil on blank or malformed input.
func parseDate(val string) *time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil
	}
	return &t
}

// normalizeStatus lowercases and validates a status cell against the item
// lifecycle set, falling back to active on anything unrecognized.
func normalizeStatus(val string) model.ItemStatus {
	status := model.ItemStatus(strings.ToLower(strings.TrimSpace(val)))
	if !model.ValidItemStatus(status) {
		return model.ItemActive
	}
	return status
}
