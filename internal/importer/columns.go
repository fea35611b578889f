package importer

import (
	"fmt"
	"strings"
)

// columnAliases maps logical field names to the header spellings accepted
// for them, compared case-insensitively. First matching alias wins.
var columnAliases = map[string][]string{
	"sku":         {"sku_id", "sku", "skuid"},
	"name":        {"name", "product_name", "product", "title"},
	"category":    {"category", "category_name", "cat"},
	"price":       {"price", "unit_price", "selling_price"},
	"quantity":    {"quantity", "qty", "stock"},
	"expiry":      {"expiry", "expiration_date", "exp_date", "expire_date"},
	"description": {"description", "desc"},
	"status":      {"status"},
}

// requiredFields must all resolve or the run aborts.
var requiredFields = []string{"sku", "name", "category"}

// SchemaError is fatal to the whole import: at least one required logical
// column could not be resolved against the file header.
type SchemaError struct {
	Missing []string
	Header  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column(s) %s not found in CSV header %v",
		strings.Join(e.Missing, ", "), e.Header)
}

// resolveColumns maps logical field names to header indexes. Unresolvable
// optional fields are simply absent from the result.
func resolveColumns(header []string) (map[string]int, *SchemaError) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, seen := byName[key]; !seen {
			byName[key] = i
		}
	}

	mapping := make(map[string]int, len(columnAliases))
	for logical, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				mapping[logical] = idx
				break
			}
		}
	}

	var missing []string
	for _, req := range requiredFields {
		if _, ok := mapping[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Header: header}
	}
	return mapping, nil
}

// field returns the trimmed cell for a logical column, or "" when the
// column is unresolved or the row is short.
func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
